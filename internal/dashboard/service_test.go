package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/internal/files"
	"github.com/starterhq/backoffice-backend/internal/products"
	"github.com/starterhq/backoffice-backend/internal/users"
	"github.com/starterhq/backoffice-backend/pkg/db/models"
	"github.com/starterhq/backoffice-backend/pkg/enums"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
)

type fakeUserRepo struct {
	user  *models.User
	count int64
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) users.Repository { return f }

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByMobile(_ context.Context, _ string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(_ context.Context, _ enums.RoleType) (*models.Role, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) { return f.count, nil }

func (f *fakeUserRepo) Paginate(_ context.Context, _, _ int, _ string) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Save(_ context.Context, _ *models.User) error { return nil }

func (f *fakeUserRepo) ReplaceRoles(_ context.Context, _ *models.User, _ []models.Role) error {
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ *models.User) error { return nil }

type fakeProductRepo struct {
	count    int64
	lowStock int64
}

func (f *fakeProductRepo) WithTx(tx *gorm.DB) products.Repository { return f }

func (f *fakeProductRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) List(_ context.Context) ([]models.Product, error) { return nil, nil }

func (f *fakeProductRepo) FindByCategory(_ context.Context, _ string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Count(_ context.Context) (int64, error) { return f.count, nil }

func (f *fakeProductRepo) CountBelowQuantity(_ context.Context, threshold int) (int64, error) {
	if threshold != LowStockThreshold {
		return 0, nil
	}
	return f.lowStock, nil
}

func (f *fakeProductRepo) Paginate(_ context.Context, _, _ int, _ string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Create(_ context.Context, _ *models.Product) error { return nil }

func (f *fakeProductRepo) Save(_ context.Context, _ *models.Product) error { return nil }

func (f *fakeProductRepo) Delete(_ context.Context, _ *models.Product) error { return nil }

func (f *fakeProductRepo) FindInventoryByProductID(_ context.Context, _ uuid.UUID) (*models.Inventory, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) UpsertInventory(_ context.Context, _ *models.Inventory) error { return nil }

type fakeFileRepo struct {
	count int64
}

func (f *fakeFileRepo) WithTx(tx *gorm.DB) files.Repository { return f }

func (f *fakeFileRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.File, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFileRepo) List(_ context.Context) ([]models.File, error) { return nil, nil }

func (f *fakeFileRepo) Count(_ context.Context) (int64, error) { return f.count, nil }

func (f *fakeFileRepo) Create(_ context.Context, _ *models.File) error { return nil }

func (f *fakeFileRepo) Delete(_ context.Context, _ *models.File) error { return nil }

func newTestService(t *testing.T, userRepo *fakeUserRepo, productRepo *fakeProductRepo, fileRepo *fakeFileRepo) *service {
	t.Helper()
	svc, err := NewService(userRepo, productRepo, fileRepo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func TestGetDashboardStatsUserNotFound(t *testing.T) {
	svc := newTestService(t, &fakeUserRepo{}, &fakeProductRepo{}, &fakeFileRepo{})

	_, err := svc.GetDashboardStats(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetDashboardStatsCountersAndPlaceholders(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := newTestService(t,
		&fakeUserRepo{user: user, count: 4},
		&fakeProductRepo{count: 12, lowStock: 3},
		&fakeFileRepo{count: 7},
	)

	stats, err := svc.GetDashboardStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get dashboard stats: %v", err)
	}
	if stats.TotalProducts != 12 || stats.TotalUsers != 4 || stats.TotalFiles != 7 || stats.LowStockProducts != 3 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.ProductsGrowth != 0 || stats.UsersGrowth != 0 || stats.FilesGrowth != 0 || stats.LowStockGrowth != 0 {
		t.Fatalf("growth placeholders must stay zero: %+v", stats)
	}
}

func TestGetRecentActivityFixedFeed(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := newTestService(t, &fakeUserRepo{user: user}, &fakeProductRepo{}, &fakeFileRepo{})

	frozen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	feed, err := svc.GetRecentActivity(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get recent activity: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected three entries, got %d", len(feed))
	}
	wantTypes := []string{"product", "user", "inventory"}
	wantOffsets := []time.Duration{-2 * time.Hour, -4 * time.Hour, -6 * time.Hour}
	for i, entry := range feed {
		if entry.Type != wantTypes[i] {
			t.Fatalf("entry %d: expected type %s, got %s", i, wantTypes[i], entry.Type)
		}
		if !entry.Timestamp.Equal(frozen.Add(wantOffsets[i])) {
			t.Fatalf("entry %d: unexpected timestamp %v", i, entry.Timestamp)
		}
	}
}

func TestGetRecentActivityUserNotFound(t *testing.T) {
	svc := newTestService(t, &fakeUserRepo{}, &fakeProductRepo{}, &fakeFileRepo{})

	_, err := svc.GetRecentActivity(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
