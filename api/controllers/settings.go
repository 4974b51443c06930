package controllers

import (
	"net/http"
	"strings"

	"github.com/starterhq/backoffice-backend/api/middleware"
	"github.com/starterhq/backoffice-backend/api/responses"
	"github.com/starterhq/backoffice-backend/api/validators"
	settingsvc "github.com/starterhq/backoffice-backend/internal/settings"
	"github.com/starterhq/backoffice-backend/pkg/enums"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

// GetUserSettings returns the combined profile, notification and appearance
// view, creating default settings rows on first read.
func GetUserSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetUserSettings(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Settings retrieved successfully", view)
	}
}

// UpdateUserSettings applies profile-level changes from the settings page.
func UpdateUserSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		view, err := svc.UpdateUserSettings(r.Context(), actorID, userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Settings updated successfully", view)
	}
}

// UpdatePassword rotates a user's password after checking the current one.
func UpdatePassword(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		err = svc.UpdatePassword(r.Context(), actorID, userID, settingsvc.UpdatePasswordInput{
			CurrentPassword: payload.CurrentPassword,
			NewPassword:     payload.NewPassword,
			ConfirmPassword: payload.ConfirmPassword,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Password updated successfully", nil)
	}
}

// UpdateNotificationSettings overwrites every notification toggle.
func UpdateNotificationSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateNotificationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		view, err := svc.UpdateNotificationSettings(r.Context(), actorID, userID, settingsvc.UpdateNotificationInput{
			EmailNotifications:   payload.EmailNotifications,
			LowStockAlerts:       payload.LowStockAlerts,
			NewUserRegistrations: payload.NewUserRegistrations,
			SystemUpdates:        payload.SystemUpdates,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Notification settings updated successfully", view)
	}
}

// UpdateAppearanceSettings maps the raw theme/density strings onto the enums.
func UpdateAppearanceSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAppearanceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		view, err := svc.UpdateAppearanceSettings(r.Context(), actorID, userID, settingsvc.UpdateAppearanceInput{
			Theme:   payload.Theme,
			Density: payload.Density,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Appearance settings updated successfully", view)
	}
}

type updateUserSettingsRequest struct {
	Email     string   `json:"email" validate:"omitempty,email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Mobile    string   `json:"mobile"`
	Gender    string   `json:"gender"`
	Status    string   `json:"status"`
	Roles     []string `json:"roles" validate:"omitempty,dive,required"`
}

func (r updateUserSettingsRequest) toInput() (settingsvc.UpdateUserSettingsInput, error) {
	input := settingsvc.UpdateUserSettingsInput{
		Email:     strings.TrimSpace(r.Email),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Mobile:    strings.TrimSpace(r.Mobile),
	}

	if raw := strings.TrimSpace(r.Gender); raw != "" {
		gender, err := enums.ParseGender(raw)
		if err != nil {
			return settingsvc.UpdateUserSettingsInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
		}
		input.Gender = gender
	}

	if raw := strings.TrimSpace(r.Status); raw != "" {
		status, err := enums.ParseUserStatus(raw)
		if err != nil {
			return settingsvc.UpdateUserSettingsInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = status
	}

	for _, raw := range r.Roles {
		role, err := enums.ParseRoleType(strings.TrimSpace(raw))
		if err != nil {
			return settingsvc.UpdateUserSettingsInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
		}
		input.Roles = append(input.Roles, role)
	}

	return input, nil
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type updateNotificationRequest struct {
	EmailNotifications   bool `json:"emailNotifications"`
	LowStockAlerts       bool `json:"lowStockAlerts"`
	NewUserRegistrations bool `json:"newUserRegistrations"`
	SystemUpdates        bool `json:"systemUpdates"`
}

type updateAppearanceRequest struct {
	Theme   string `json:"theme" validate:"required"`
	Density string `json:"density" validate:"required"`
}
