package models

import (
	"github.com/google/uuid"

	"github.com/starterhq/backoffice-backend/pkg/enums"
)

// Role is a referenced lookup row; users point at roles, never own them.
// The role table is seeded by migration.
type Role struct {
	ID   uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name enums.RoleType `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
}
