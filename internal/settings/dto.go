package settings

import (
	"strings"

	"github.com/starterhq/backoffice-backend/pkg/db/models"
	"github.com/starterhq/backoffice-backend/pkg/enums"
)

// UserSettingsView assembles the profile plus both settings rows. Theme and
// density serialize lowercase.
type UserSettingsView struct {
	Email                string           `json:"email"`
	FirstName            string           `json:"firstName"`
	LastName             string           `json:"lastName"`
	Mobile               string           `json:"mobile"`
	Gender               string           `json:"gender,omitempty"`
	Status               string           `json:"status"`
	Role                 []string         `json:"role"`
	NotificationSettings NotificationView `json:"notificationSettings"`
	AppearanceSettings   AppearanceView   `json:"appearanceSettings"`
}

// NotificationView mirrors the notification toggles.
type NotificationView struct {
	EmailNotifications   bool `json:"emailNotifications"`
	LowStockAlerts       bool `json:"lowStockAlerts"`
	NewUserRegistrations bool `json:"newUserRegistrations"`
	SystemUpdates        bool `json:"systemUpdates"`
}

// AppearanceView mirrors the appearance row with lowercase enum fields.
type AppearanceView struct {
	Theme   string `json:"theme"`
	Density string `json:"density"`
}

// UpdateUserSettingsInput carries the profile mutation; the role list is
// optional (when present the set is replaced with the first role).
type UpdateUserSettingsInput struct {
	Email     string
	FirstName string
	LastName  string
	Mobile    string
	Gender    enums.Gender
	Status    enums.UserStatus
	Roles     []enums.RoleType
}

// UpdatePasswordInput carries the password rotation payload.
type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// UpdateNotificationInput overwrites all notification toggles.
type UpdateNotificationInput struct {
	EmailNotifications   bool
	LowStockAlerts       bool
	NewUserRegistrations bool
	SystemUpdates        bool
}

// UpdateAppearanceInput carries raw theme/density strings; they are mapped
// case-insensitively to the enums.
type UpdateAppearanceInput struct {
	Theme   string
	Density string
}

// NewNotificationView maps the persisted row.
func NewNotificationView(row *models.NotificationSettings) NotificationView {
	return NotificationView{
		EmailNotifications:   row.EmailNotifications,
		LowStockAlerts:       row.LowStockAlerts,
		NewUserRegistrations: row.NewUserRegistrations,
		SystemUpdates:        row.SystemUpdates,
	}
}

// NewAppearanceView maps the persisted row, lower-casing the enum fields.
func NewAppearanceView(row *models.AppearanceSettings) AppearanceView {
	return AppearanceView{
		Theme:   strings.ToLower(row.Theme.String()),
		Density: strings.ToLower(row.Density.String()),
	}
}
