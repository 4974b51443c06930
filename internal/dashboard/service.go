package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/internal/files"
	"github.com/starterhq/backoffice-backend/internal/products"
	"github.com/starterhq/backoffice-backend/internal/users"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
)

// LowStockThreshold is the quantity cutoff below which a product counts as
// low stock.
const LowStockThreshold = 10

// StatsDTO is the dashboard counters payload. The growth fields are
// documented placeholders, always zero until real period-over-period
// analytics exist.
type StatsDTO struct {
	TotalProducts    int64   `json:"totalProducts"`
	TotalUsers       int64   `json:"totalUsers"`
	TotalFiles       int64   `json:"totalFiles"`
	LowStockProducts int64   `json:"lowStockProducts"`
	ProductsGrowth   float64 `json:"productsGrowth"`
	UsersGrowth      float64 `json:"usersGrowth"`
	FilesGrowth      float64 `json:"filesGrowth"`
	LowStockGrowth   float64 `json:"lowStockGrowth"`
}

// ActivityDTO is one feed entry. The feed is a fixed sample, not a real
// audit trail (documented limitation).
type ActivityDTO struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Service exposes the dashboard read model.
type Service interface {
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*StatsDTO, error)
	GetRecentActivity(ctx context.Context, userID uuid.UUID) ([]ActivityDTO, error)
}

type service struct {
	userRepo    users.Repository
	productRepo products.Repository
	fileRepo    files.Repository
	now         func() time.Time
}

// NewService constructs a dashboard service instance.
func NewService(userRepo users.Repository, productRepo products.Repository, fileRepo files.Repository) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if fileRepo == nil {
		return nil, fmt.Errorf("files repository required")
	}
	return &service{
		userRepo:    userRepo,
		productRepo: productRepo,
		fileRepo:    fileRepo,
		now:         time.Now,
	}, nil
}

// GetDashboardStats aggregates the entity counters.
func (s *service) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*StatsDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count users")
	}
	totalFiles, err := s.fileRepo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count files")
	}
	lowStock, err := s.productRepo.CountBelowQuantity(ctx, LowStockThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count low stock")
	}

	return &StatsDTO{
		TotalProducts:    totalProducts,
		TotalUsers:       totalUsers,
		TotalFiles:       totalFiles,
		LowStockProducts: lowStock,
	}, nil
}

// GetRecentActivity returns the fixed sample feed.
func (s *service) GetRecentActivity(ctx context.Context, userID uuid.UUID) ([]ActivityDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	return []ActivityDTO{
		{Type: "product", Description: "New product added to catalog", Timestamp: now.Add(-2 * time.Hour)},
		{Type: "user", Description: "New user registered", Timestamp: now.Add(-4 * time.Hour)},
		{Type: "inventory", Description: "Inventory updated", Timestamp: now.Add(-6 * time.Hour)},
	}, nil
}

func (s *service) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user")
	}
	return nil
}
