package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/starterhq/backoffice-backend/api/middleware"
	"github.com/starterhq/backoffice-backend/api/responses"
	"github.com/starterhq/backoffice-backend/api/validators"
	productsvc "github.com/starterhq/backoffice-backend/internal/products"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

// ListProducts returns the full catalog, optionally filtered by category.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(r.URL.Query().Get("category"))

		var (
			rows []productsvc.ProductDTO
			err  error
		)
		if category != "" {
			rows, err = svc.FindByCategory(r.Context(), category)
		} else {
			rows, err = svc.ListProducts(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Products retrieved successfully", rows)
	}
}

// PageProducts returns one page of the catalog.
func PageProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.PaginateProducts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Products retrieved successfully", page)
	}
}

// GetProduct loads a single product with its inventory.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Product retrieved successfully", product)
	}
}

// CreateProduct inserts a new catalog entry.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		product, err := svc.CreateProduct(r.Context(), actorID, productsvc.CreateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			Category:    payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "Product created successfully", product)
	}
}

// UpdateProduct overwrites the product scalars and, when provided, the
// inventory sub-object.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			Category:    payload.Category,
		}
		if payload.Inventory != nil {
			input.Inventory = &productsvc.InventoryInput{
				Quantity: payload.Inventory.Quantity,
				Location: payload.Inventory.Location,
			}
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		product, err := svc.UpdateProduct(r.Context(), actorID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Product updated successfully", product)
	}
}

// DeleteProduct removes the product (its inventory row cascades).
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Product deleted successfully", nil)
	}
}

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Category    string          `json:"category"`
}

type updateProductRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Description string                  `json:"description"`
	Price       decimal.Decimal         `json:"price" validate:"required"`
	Quantity    int                     `json:"quantity" validate:"gte=0"`
	Category    string                  `json:"category"`
	Inventory   *inventoryUpdateRequest `json:"inventory,omitempty"`
}

type inventoryUpdateRequest struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location"`
}
