package models

import (
	"github.com/google/uuid"

	"github.com/starterhq/backoffice-backend/pkg/enums"
)

// AppearanceSettings holds the per-user UI preferences. Exactly one row per
// user (unique index on user_id), created lazily with defaults.
type AppearanceSettings struct {
	ID      uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID     `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"userId"`
	Theme   enums.Theme   `gorm:"column:theme;type:text;not null;default:system" json:"theme"`
	Density enums.Density `gorm:"column:density;type:text;not null;default:comfortable" json:"density"`
	InitiatorAudit
}

// DefaultAppearanceSettings returns the defaults applied on first touch.
func DefaultAppearanceSettings(userID uuid.UUID) AppearanceSettings {
	return AppearanceSettings{
		UserID:  userID,
		Theme:   enums.ThemeSystem,
		Density: enums.DensityComfortable,
	}
}
