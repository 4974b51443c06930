package controllers

import (
	"net/http"
	"strings"

	"github.com/starterhq/backoffice-backend/api/middleware"
	"github.com/starterhq/backoffice-backend/api/responses"
	"github.com/starterhq/backoffice-backend/api/validators"
	usersvc "github.com/starterhq/backoffice-backend/internal/users"
	"github.com/starterhq/backoffice-backend/pkg/enums"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

// ListUsers returns one page of users ordered by the requested column.
func ListUsers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListUsers(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Users retrieved successfully", page)
	}
}

// GetUser loads a single user by path id.
func GetUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "User retrieved successfully", user)
	}
}

// CurrentUser resolves the authenticated principal to their user record.
func CurrentUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := middleware.UserEmailFromContext(r.Context())

		id, err := svc.CurrentUserID(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "User retrieved successfully", user)
	}
}

// UpdateUser applies profile and role changes to a user.
func UpdateUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
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
		user, err := svc.UpdateUser(r.Context(), actorID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "User updated successfully", user)
	}
}

// DeleteUser removes a user and returns the deleted snapshot.
func DeleteUser(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.DeleteUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "User deleted successfully", user)
	}
}

type updateUserRequest struct {
	Email     string   `json:"email" validate:"omitempty,email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Mobile    string   `json:"mobile"`
	Gender    string   `json:"gender"`
	Status    string   `json:"status"`
	Roles     []string `json:"roles" validate:"required,min=1,dive,required"`
}

func (r updateUserRequest) toInput() (usersvc.UpdateUserInput, error) {
	input := usersvc.UpdateUserInput{
		Email:     strings.TrimSpace(r.Email),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Mobile:    strings.TrimSpace(r.Mobile),
	}

	if raw := strings.TrimSpace(r.Gender); raw != "" {
		gender, err := enums.ParseGender(raw)
		if err != nil {
			return usersvc.UpdateUserInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
		}
		input.Gender = gender
	}

	if raw := strings.TrimSpace(r.Status); raw != "" {
		status, err := enums.ParseUserStatus(raw)
		if err != nil {
			return usersvc.UpdateUserInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = status
	}

	for _, raw := range r.Roles {
		role, err := enums.ParseRoleType(strings.TrimSpace(raw))
		if err != nil {
			return usersvc.UpdateUserInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
		}
		input.Roles = append(input.Roles, role)
	}

	return input, nil
}
