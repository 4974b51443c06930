package settings

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/internal/users"
	"github.com/starterhq/backoffice-backend/pkg/config"
	"github.com/starterhq/backoffice-backend/pkg/db/models"
	"github.com/starterhq/backoffice-backend/pkg/enums"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/security"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    32768,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeSettingsRepo struct {
	notifications map[uuid.UUID]*models.NotificationSettings
	appearances   map[uuid.UUID]*models.AppearanceSettings

	notificationCreates int
	appearanceCreates   int
	savedNotifications  int
	savedAppearances    int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		notifications: map[uuid.UUID]*models.NotificationSettings{},
		appearances:   map[uuid.UUID]*models.AppearanceSettings{},
	}
}

func (f *fakeSettingsRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeSettingsRepo) GetOrCreateNotification(_ context.Context, userID uuid.UUID) (*models.NotificationSettings, error) {
	if row, ok := f.notifications[userID]; ok {
		return row, nil
	}
	defaults := models.DefaultNotificationSettings(userID)
	defaults.ID = uuid.New()
	f.notifications[userID] = &defaults
	f.notificationCreates++
	return &defaults, nil
}

func (f *fakeSettingsRepo) GetOrCreateAppearance(_ context.Context, userID uuid.UUID) (*models.AppearanceSettings, error) {
	if row, ok := f.appearances[userID]; ok {
		return row, nil
	}
	defaults := models.DefaultAppearanceSettings(userID)
	defaults.ID = uuid.New()
	f.appearances[userID] = &defaults
	f.appearanceCreates++
	return &defaults, nil
}

func (f *fakeSettingsRepo) SaveNotification(_ context.Context, row *models.NotificationSettings) error {
	f.notifications[row.UserID] = row
	f.savedNotifications++
	return nil
}

func (f *fakeSettingsRepo) SaveAppearance(_ context.Context, row *models.AppearanceSettings) error {
	f.appearances[row.UserID] = row
	f.savedAppearances++
	return nil
}

type fakeUserRepo struct {
	usersByID     map[uuid.UUID]*models.User
	usersByEmail  map[string]*models.User
	usersByMobile map[string]*models.User
	rolesByName   map[enums.RoleType]*models.Role

	saved         []*models.User
	replacedRoles []models.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:     map[uuid.UUID]*models.User{},
		usersByEmail:  map[string]*models.User{},
		usersByMobile: map[string]*models.User{},
		rolesByName:   map[enums.RoleType]*models.Role{},
	}
}

func (f *fakeUserRepo) addUser(user *models.User) {
	f.usersByID[user.ID] = user
	f.usersByEmail[user.Email] = user
	f.usersByMobile[user.Mobile] = user
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) users.Repository { return f }

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.usersByID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByMobile(_ context.Context, mobile string) (*models.User, error) {
	if user, ok := f.usersByMobile[mobile]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(_ context.Context, name enums.RoleType) (*models.Role, error) {
	if role, ok := f.rolesByName[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeUserRepo) Paginate(_ context.Context, _, _ int, _ string) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	f.saved = append(f.saved, user)
	return nil
}

func (f *fakeUserRepo) ReplaceRoles(_ context.Context, _ *models.User, roles []models.Role) error {
	f.replacedRoles = roles
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ *models.User) error { return nil }

func newTestService(t *testing.T, repo Repository, userRepo users.Repository) Service {
	t.Helper()
	svc, err := NewService(repo, userRepo, fakeTxRunner{}, testPasswordCfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		Mobile:       "+15550001111",
		PasswordHash: hash,
		Status:       enums.UserStatusActive,
		Roles:        []models.Role{{ID: uuid.New(), Name: enums.RoleTypeUser}},
	}
	repo.addUser(user)
	return user
}

func TestGetUserSettingsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeSettingsRepo(), newFakeUserRepo())

	_, err := svc.GetUserSettings(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetUserSettingsLazilyCreatesDefaults(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	view, err := svc.GetUserSettings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user settings: %v", err)
	}

	n := view.NotificationSettings
	if !n.EmailNotifications || !n.LowStockAlerts || n.NewUserRegistrations || !n.SystemUpdates {
		t.Fatalf("unexpected notification defaults: %+v", n)
	}
	if view.AppearanceSettings.Theme != "system" || view.AppearanceSettings.Density != "comfortable" {
		t.Fatalf("unexpected appearance defaults: %+v", view.AppearanceSettings)
	}
	if settingsRepo.notificationCreates != 1 || settingsRepo.appearanceCreates != 1 {
		t.Fatal("first read must persist both rows")
	}
	if len(view.Role) != 1 || view.Role[0] != string(enums.RoleTypeUser) {
		t.Fatalf("unexpected role names: %v", view.Role)
	}

	// second read reuses the persisted rows
	if _, err := svc.GetUserSettings(context.Background(), user.ID); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if settingsRepo.notificationCreates != 1 || settingsRepo.appearanceCreates != 1 {
		t.Fatal("second read must not create again")
	}
}

func TestUpdateUserSettingsEmailConflict(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	other := &models.User{ID: uuid.New(), Email: "bob@example.com", Mobile: "+15550002222"}
	userRepo.addUser(other)
	svc := newTestService(t, settingsRepo, userRepo)

	_, err := svc.UpdateUserSettings(context.Background(), user.ID, user.ID, UpdateUserSettingsInput{
		Email: other.Email,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(userRepo.saved) != 0 {
		t.Fatal("conflicting update must not persist")
	}
}

func TestUpdateUserSettingsMobileConflict(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	other := &models.User{ID: uuid.New(), Email: "bob@example.com", Mobile: "+15550002222"}
	userRepo.addUser(other)
	svc := newTestService(t, settingsRepo, userRepo)

	_, err := svc.UpdateUserSettings(context.Background(), user.ID, user.ID, UpdateUserSettingsInput{
		Mobile: other.Mobile,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateUserSettingsRoundTripsSameValues(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	before, err := svc.GetUserSettings(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user settings: %v", err)
	}

	after, err := svc.UpdateUserSettings(context.Background(), user.ID, user.ID, UpdateUserSettingsInput{
		Email:     before.Email,
		FirstName: before.FirstName,
		LastName:  before.LastName,
		Mobile:    before.Mobile,
		Status:    enums.UserStatusActive,
	})
	if err != nil {
		t.Fatalf("update user settings: %v", err)
	}
	if !reflect.DeepEqual(after, before) {
		t.Fatalf("same-values update must round-trip, got %+v vs %+v", after, before)
	}
}

func TestUpdateUserSettingsReplacesRoleWithFirst(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	userRepo.rolesByName[enums.RoleTypeAdmin] = &models.Role{ID: uuid.New(), Name: enums.RoleTypeAdmin}
	svc := newTestService(t, settingsRepo, userRepo)

	view, err := svc.UpdateUserSettings(context.Background(), user.ID, user.ID, UpdateUserSettingsInput{
		Roles: []enums.RoleType{enums.RoleTypeAdmin, enums.RoleTypeManager},
	})
	if err != nil {
		t.Fatalf("update user settings: %v", err)
	}
	if len(userRepo.replacedRoles) != 1 || userRepo.replacedRoles[0].Name != enums.RoleTypeAdmin {
		t.Fatalf("expected role set replaced with first role, got %v", userRepo.replacedRoles)
	}
	if len(view.Role) != 1 || view.Role[0] != string(enums.RoleTypeAdmin) {
		t.Fatalf("unexpected refreshed roles: %v", view.Role)
	}
}

func TestUpdateUserSettingsUnknownRole(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	_, err := svc.UpdateUserSettings(context.Background(), user.ID, user.ID, UpdateUserSettingsInput{
		Roles: []enums.RoleType{"ROLE_WIZARD"},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown role, got %v", err)
	}
}

func TestUpdatePasswordWrongCurrentNeverMutates(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	originalHash := user.PasswordHash
	svc := newTestService(t, settingsRepo, userRepo)

	err := svc.UpdatePassword(context.Background(), user.ID, user.ID, UpdatePasswordInput{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidCredential {
		t.Fatalf("expected invalid credential, got %v", err)
	}
	if user.PasswordHash != originalHash || len(userRepo.saved) != 0 {
		t.Fatal("wrong current password must not mutate the stored hash")
	}
}

func TestUpdatePasswordMismatchedConfirmation(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	err := svc.UpdatePassword(context.Background(), user.ID, user.ID, UpdatePasswordInput{
		CurrentPassword: "hunter2-hunter2",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "different-pass",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(userRepo.saved) != 0 {
		t.Fatal("mismatched confirmation must not persist")
	}
}

func TestUpdatePasswordStoresNewHash(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	originalHash := user.PasswordHash
	svc := newTestService(t, settingsRepo, userRepo)

	err := svc.UpdatePassword(context.Background(), user.ID, user.ID, UpdatePasswordInput{
		CurrentPassword: "hunter2-hunter2",
		NewPassword:     "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("update password: %v", err)
	}
	if user.PasswordHash == originalHash {
		t.Fatal("expected a new stored hash")
	}
	ok, err := security.VerifyPassword("brand-new-pass", user.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new password must verify, ok=%v err=%v", ok, err)
	}
}

func TestUpdateNotificationSettingsOverwritesAll(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	view, err := svc.UpdateNotificationSettings(context.Background(), user.ID, user.ID, UpdateNotificationInput{
		EmailNotifications:   false,
		LowStockAlerts:       false,
		NewUserRegistrations: true,
		SystemUpdates:        false,
	})
	if err != nil {
		t.Fatalf("update notification settings: %v", err)
	}
	if view.EmailNotifications || view.LowStockAlerts || !view.NewUserRegistrations || view.SystemUpdates {
		t.Fatalf("toggles not overwritten: %+v", view)
	}
	if settingsRepo.savedNotifications != 1 {
		t.Fatalf("expected one save, got %d", settingsRepo.savedNotifications)
	}
}

func TestUpdateAppearanceSettingsCaseInsensitive(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	view, err := svc.UpdateAppearanceSettings(context.Background(), user.ID, user.ID, UpdateAppearanceInput{
		Theme:   "DARK",
		Density: "Compact",
	})
	if err != nil {
		t.Fatalf("update appearance settings: %v", err)
	}
	if view.Theme != "dark" || view.Density != "compact" {
		t.Fatalf("unexpected appearance view: %+v", view)
	}
	if settingsRepo.savedAppearances != 1 {
		t.Fatalf("expected one save, got %d", settingsRepo.savedAppearances)
	}
}

func TestUpdateAppearanceSettingsUnknownValue(t *testing.T) {
	settingsRepo := newFakeSettingsRepo()
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "hunter2-hunter2")
	svc := newTestService(t, settingsRepo, userRepo)

	_, err := svc.UpdateAppearanceSettings(context.Background(), user.ID, user.ID, UpdateAppearanceInput{
		Theme:   "neon",
		Density: "compact",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if settingsRepo.savedAppearances != 0 {
		t.Fatal("unknown theme must not persist")
	}
}
