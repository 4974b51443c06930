package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/internal/products"
	"github.com/starterhq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
)

// Service exposes per-product stock operations.
type Service interface {
	UpdateInventory(ctx context.Context, actorID, productID uuid.UUID, input UpdateInventoryInput) (*products.InventoryDTO, error)
	GetInventory(ctx context.Context, actorID, productID uuid.UUID) (*products.InventoryDTO, error)
}

// UpdateInventoryInput carries the stock mutation payload.
type UpdateInventoryInput struct {
	Quantity int
	Location string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo products.Repository
	tx   txRunner
}

// NewService constructs an inventory service instance.
func NewService(repo products.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// UpdateInventory sets the product quantity and upserts the stock row inside
// one transaction; a mid-sequence failure rolls back both writes.
func (s *service) UpdateInventory(ctx context.Context, actorID, productID uuid.UUID, input UpdateInventoryInput) (*products.InventoryDTO, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	inventory := product.Inventory
	if inventory == nil {
		seeded := models.Inventory{
			ProductID: product.ID,
			Location:  models.DefaultInventoryLocation,
		}
		inventory = &seeded
	}
	inventory.Quantity = input.Quantity
	if input.Location != "" {
		inventory.Location = input.Location
	}
	inventory.Touch(actorID)

	product.Quantity = input.Quantity
	product.Touch(actorID)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Save(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save product")
		}
		if err := txRepo.UpsertInventory(ctx, inventory); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert inventory")
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory")
	}

	return products.NewInventoryDTO(inventory), nil
}

// GetInventory returns the stock row for the product, lazily creating one
// seeded with the product's current quantity and the default location.
func (s *service) GetInventory(ctx context.Context, actorID, productID uuid.UUID) (*products.InventoryDTO, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	inventory, err := s.repo.FindInventoryByProductID(ctx, productID)
	if err == nil {
		return products.NewInventoryDTO(inventory), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find inventory")
	}

	seeded := &models.Inventory{
		ProductID: product.ID,
		Quantity:  product.Quantity,
		Location:  models.DefaultInventoryLocation,
	}
	seeded.Touch(actorID)
	// ON CONFLICT DO UPDATE keeps a concurrent first read idempotent
	if err := s.repo.UpsertInventory(ctx, seeded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed inventory")
	}
	return products.NewInventoryDTO(seeded), nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find product")
	}
	return product, nil
}
