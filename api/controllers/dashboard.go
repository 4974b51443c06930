package controllers

import (
	"net/http"

	"github.com/starterhq/backoffice-backend/api/responses"
	dashboardsvc "github.com/starterhq/backoffice-backend/internal/dashboard"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

// DashboardStats aggregates the entity counters for the admin landing page.
func DashboardStats(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.GetDashboardStats(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Dashboard stats retrieved successfully", stats)
	}
}

// DashboardActivity returns the recent activity feed.
func DashboardActivity(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		feed, err := svc.GetRecentActivity(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Recent activity retrieved successfully", feed)
	}
}
