package settings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/starterhq/backoffice-backend/pkg/db/models"
)

// Repository exposes per-user settings persistence. The get-or-create pair is
// idempotent: concurrent first reads race on an ON CONFLICT DO NOTHING insert
// and both land on the same row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreateNotification(ctx context.Context, userID uuid.UUID) (*models.NotificationSettings, error)
	GetOrCreateAppearance(ctx context.Context, userID uuid.UUID) (*models.AppearanceSettings, error)
	SaveNotification(ctx context.Context, row *models.NotificationSettings) error
	SaveAppearance(ctx context.Context, row *models.AppearanceSettings) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &gormRepository{db: tx}
}

func (r *gormRepository) GetOrCreateNotification(ctx context.Context, userID uuid.UUID) (*models.NotificationSettings, error) {
	defaults := models.DefaultNotificationSettings(userID)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&defaults).Error
	if err != nil {
		return nil, err
	}

	var row models.NotificationSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepository) GetOrCreateAppearance(ctx context.Context, userID uuid.UUID) (*models.AppearanceSettings, error) {
	defaults := models.DefaultAppearanceSettings(userID)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&defaults).Error
	if err != nil {
		return nil, err
	}

	var row models.AppearanceSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepository) SaveNotification(ctx context.Context, row *models.NotificationSettings) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *gormRepository) SaveAppearance(ctx context.Context, row *models.AppearanceSettings) error {
	return r.db.WithContext(ctx).Save(row).Error
}
