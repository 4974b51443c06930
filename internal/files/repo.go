package files

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/pkg/db/models"
)

// Repository exposes file blob persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	List(ctx context.Context) ([]models.File, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, file *models.File) error
	Delete(ctx context.Context, file *models.File) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a files repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &gormRepository{db: tx}
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.File, error) {
	var rows []models.File
	// listing omits the blob; content is loaded per-file on download
	err := r.db.WithContext(ctx).
		Omit("content").
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.File{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *gormRepository) Create(ctx context.Context, file *models.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *gormRepository) Delete(ctx context.Context, file *models.File) error {
	return r.db.WithContext(ctx).Delete(file).Error
}
