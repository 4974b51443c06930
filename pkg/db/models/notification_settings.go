package models

import (
	"github.com/google/uuid"
)

// NotificationSettings holds the per-user notification toggles. Exactly one
// row per user (unique index on user_id), created lazily with defaults the
// first time settings are read or written.
type NotificationSettings struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"userId"`
	EmailNotifications   bool      `gorm:"column:email_notifications;not null;default:true" json:"emailNotifications"`
	LowStockAlerts       bool      `gorm:"column:low_stock_alerts;not null;default:true" json:"lowStockAlerts"`
	NewUserRegistrations bool      `gorm:"column:new_user_registrations;not null;default:false" json:"newUserRegistrations"`
	SystemUpdates        bool      `gorm:"column:system_updates;not null;default:true" json:"systemUpdates"`
	InitiatorAudit
}

// DefaultNotificationSettings returns the defaults applied on first touch.
func DefaultNotificationSettings(userID uuid.UUID) NotificationSettings {
	return NotificationSettings{
		UserID:               userID,
		EmailNotifications:   true,
		LowStockAlerts:       true,
		NewUserRegistrations: false,
		SystemUpdates:        true,
	}
}
