package models

import (
	"github.com/google/uuid"

	"github.com/starterhq/backoffice-backend/pkg/enums"
)

// User represents the canonical identity entity. Email and mobile are
// unique at the storage level; the service-layer pre-checks are advisory.
type User struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string           `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	FirstName    string           `gorm:"column:first_name;not null" json:"firstName"`
	LastName     string           `gorm:"column:last_name;not null" json:"lastName"`
	Mobile       string           `gorm:"column:mobile;type:text;not null;uniqueIndex" json:"mobile"`
	PasswordHash string           `gorm:"column:password_hash;not null" json:"-"`
	Gender       enums.Gender     `gorm:"column:gender;type:text" json:"gender"`
	Status       enums.UserStatus `gorm:"column:status;type:text;not null;default:ACTIVE" json:"status"`
	Roles        []Role           `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE" json:"roles"`
	InitiatorAudit
}

// RoleNames flattens the assigned roles to their names.
func (u *User) RoleNames() []enums.RoleType {
	names := make([]enums.RoleType, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
