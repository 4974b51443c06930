package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/internal/users"
	"github.com/starterhq/backoffice-backend/pkg/config"
	"github.com/starterhq/backoffice-backend/pkg/db"
	"github.com/starterhq/backoffice-backend/pkg/db/models"
	"github.com/starterhq/backoffice-backend/pkg/enums"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/security"
)

// Service exposes the per-user settings operations.
type Service interface {
	GetUserSettings(ctx context.Context, userID uuid.UUID) (*UserSettingsView, error)
	UpdateUserSettings(ctx context.Context, actorID, userID uuid.UUID, input UpdateUserSettingsInput) (*UserSettingsView, error)
	UpdatePassword(ctx context.Context, actorID, userID uuid.UUID, input UpdatePasswordInput) error
	UpdateNotificationSettings(ctx context.Context, actorID, userID uuid.UUID, input UpdateNotificationInput) (*NotificationView, error)
	UpdateAppearanceSettings(ctx context.Context, actorID, userID uuid.UUID, input UpdateAppearanceInput) (*AppearanceView, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	userRepo users.Repository
	tx       txRunner
	pwCfg    config.PasswordConfig
}

// NewService constructs a settings service instance.
func NewService(repo Repository, userRepo users.Repository, tx txRunner, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, userRepo: userRepo, tx: tx, pwCfg: pwCfg}, nil
}

// GetUserSettings assembles the profile plus lazily created settings rows.
func (s *service) GetUserSettings(ctx context.Context, userID uuid.UUID) (*UserSettingsView, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	notification, err := s.repo.GetOrCreateNotification(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: notification settings")
	}
	appearance, err := s.repo.GetOrCreateAppearance(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: appearance settings")
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name.String())
	}

	return &UserSettingsView{
		Email:                user.Email,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Mobile:               user.Mobile,
		Gender:               string(user.Gender),
		Status:               string(user.Status),
		Role:                 roles,
		NotificationSettings: NewNotificationView(notification),
		AppearanceSettings:   NewAppearanceView(appearance),
	}, nil
}

// UpdateUserSettings overwrites the profile fields and returns the refreshed
// view. The email/mobile pre-checks are advisory; the unique indexes remain
// the arbiter under races.
func (s *service) UpdateUserSettings(ctx context.Context, actorID, userID uuid.UUID, input UpdateUserSettingsInput) (*UserSettingsView, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if err := s.ensureEmailFree(ctx, input.Email, user.ID); err != nil {
			return nil, err
		}
	}
	if input.Mobile != "" && input.Mobile != user.Mobile {
		if err := s.ensureMobileFree(ctx, input.Mobile, user.ID); err != nil {
			return nil, err
		}
	}

	var role *models.Role
	if len(input.Roles) > 0 {
		role, err = s.resolveRole(ctx, input.Roles[0])
		if err != nil {
			return nil, err
		}
	}

	applyProfileUpdate(user, input)
	user.Touch(actorID)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.userRepo.WithTx(tx)
		if err := txRepo.Save(ctx, user); err != nil {
			// pre-checks are advisory; the unique indexes win under races
			if db.IsUniqueViolation(err, "idx_users_email") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email in use")
			}
			if db.IsUniqueViolation(err, "idx_users_mobile") {
				return pkgerrors.New(pkgerrors.CodeConflict, "phone in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save user")
		}
		if role != nil {
			if err := txRepo.ReplaceRoles(ctx, user, []models.Role{*role}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace roles")
			}
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user settings")
	}

	if role != nil {
		user.Roles = []models.Role{*role}
	}
	return s.GetUserSettings(ctx, userID)
}

// UpdatePassword rotates the stored hash after verifying the current one. A
// wrong current password never mutates the stored hash.
func (s *service) UpdatePassword(ctx context.Context, actorID, userID uuid.UUID, input UpdatePasswordInput) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeInvalidCredential, "current password incorrect")
	}
	if input.NewPassword != input.ConfirmPassword {
		return pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	hash, err := security.HashPassword(input.NewPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	user.PasswordHash = hash
	user.Touch(actorID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save user")
	}
	return nil
}

// UpdateNotificationSettings overwrites every toggle and returns the saved view.
func (s *service) UpdateNotificationSettings(ctx context.Context, actorID, userID uuid.UUID, input UpdateNotificationInput) (*NotificationView, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetOrCreateNotification(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: notification settings")
	}

	row.EmailNotifications = input.EmailNotifications
	row.LowStockAlerts = input.LowStockAlerts
	row.NewUserRegistrations = input.NewUserRegistrations
	row.SystemUpdates = input.SystemUpdates
	row.Touch(actorID)

	if err := s.repo.SaveNotification(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save notification settings")
	}
	view := NewNotificationView(row)
	return &view, nil
}

// UpdateAppearanceSettings maps theme/density case-insensitively and persists.
func (s *service) UpdateAppearanceSettings(ctx context.Context, actorID, userID uuid.UUID, input UpdateAppearanceInput) (*AppearanceView, error) {
	theme, err := enums.ParseTheme(input.Theme)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	density, err := enums.ParseDensity(input.Density)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetOrCreateAppearance(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: appearance settings")
	}

	row.Theme = theme
	row.Density = density
	row.Touch(actorID)

	if err := s.repo.SaveAppearance(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save appearance settings")
	}
	view := NewAppearanceView(row)
	return &view, nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user")
	}
	return user, nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	owner, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user by email")
	}
	if owner.ID != selfID {
		return pkgerrors.New(pkgerrors.CodeConflict, "email in use")
	}
	return nil
}

func (s *service) ensureMobileFree(ctx context.Context, mobile string, selfID uuid.UUID) error {
	owner, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user by mobile")
	}
	if owner.ID != selfID {
		return pkgerrors.New(pkgerrors.CodeConflict, "phone in use")
	}
	return nil
}

func (s *service) resolveRole(ctx context.Context, name enums.RoleType) (*models.Role, error) {
	role, err := s.userRepo.FindRoleByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("role %s not found", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find role")
	}
	return role, nil
}

func applyProfileUpdate(user *models.User, input UpdateUserSettingsInput) {
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Mobile != "" {
		user.Mobile = input.Mobile
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Status != "" {
		user.Status = input.Status
	}
}
