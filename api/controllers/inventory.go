package controllers

import (
	"net/http"

	"github.com/starterhq/backoffice-backend/api/middleware"
	"github.com/starterhq/backoffice-backend/api/responses"
	"github.com/starterhq/backoffice-backend/api/validators"
	inventorysvc "github.com/starterhq/backoffice-backend/internal/inventory"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

// UpdateInventory synchronizes a product's stock level and location.
func UpdateInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		inv, err := svc.UpdateInventory(r.Context(), actorID, productID, inventorysvc.UpdateInventoryInput{
			Quantity: payload.Quantity,
			Location: payload.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Inventory updated successfully", inv)
	}
}

// GetInventory reads (and lazily creates) a product's stock row.
func GetInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		inv, err := svc.GetInventory(r.Context(), actorID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Inventory retrieved successfully", inv)
	}
}

type updateInventoryRequest struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location"`
}
