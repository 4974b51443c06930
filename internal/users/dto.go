package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/starterhq/backoffice-backend/pkg/db/models"
	"github.com/starterhq/backoffice-backend/pkg/enums"
)

// UserDTO is the user payload returned to clients.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Mobile    string    `json:"mobile"`
	Gender    string    `json:"gender,omitempty"`
	Status    string    `json:"status"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateUserInput holds the validated payload for a profile update.
type UpdateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Mobile    string
	Gender    enums.Gender
	Status    enums.UserStatus
	Roles     []enums.RoleType
}

// NewUserDTO builds a DTO from the persisted model.
func NewUserDTO(user *models.User) UserDTO {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name.String())
	}
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Mobile:    user.Mobile,
		Gender:    string(user.Gender),
		Status:    string(user.Status),
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserDTOs maps a page of models.
func NewUserDTOs(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewUserDTO(&rows[i]))
	}
	return out
}
