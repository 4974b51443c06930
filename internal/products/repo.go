package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/starterhq/backoffice-backend/pkg/db/models"
)

// Repository exposes product and inventory persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	CountBelowQuantity(ctx context.Context, threshold int) (int64, error)
	Paginate(ctx context.Context, offset, limit int, sortColumn string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
	FindInventoryByProductID(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
	UpsertInventory(ctx context.Context, inventory *models.Inventory) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &gormRepository{db: tx}
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Inventory").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormRepository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Preload("Inventory").Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("category = ?", category).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *gormRepository) CountBelowQuantity(ctx context.Context, threshold int) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("quantity < ?", threshold).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *gormRepository) Paginate(ctx context.Context, offset, limit int, sortColumn string) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Order(sortColumn + " asc").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Inventory").Save(product).Error
}

func (r *gormRepository) Delete(ctx context.Context, product *models.Product) error {
	// inventory row goes with the product via ON DELETE CASCADE
	return r.db.WithContext(ctx).Delete(product).Error
}

func (r *gormRepository) FindInventoryByProductID(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	var inventory models.Inventory
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *gormRepository) UpsertInventory(ctx context.Context, inventory *models.Inventory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "location", "updated_at", "updated_by"}),
		}).
		Create(inventory).Error
}
