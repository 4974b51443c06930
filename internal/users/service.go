package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/pkg/db"
	"github.com/starterhq/backoffice-backend/pkg/db/models"
	"github.com/starterhq/backoffice-backend/pkg/enums"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/pagination"
)

// ListSortColumns is the whitelist for the paginated user listing.
var ListSortColumns = []string{"id", "email", "first_name", "last_name", "mobile", "status", "created_at"}

// Service exposes user management operations.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	ListUsers(ctx context.Context, params pagination.Params) (*pagination.Page[UserDTO], error)
	CurrentUserID(ctx context.Context, principalEmail string) (uuid.UUID, error)
	UpdateUser(ctx context.Context, actorID, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs a user service instance.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// GetUser loads one user by id.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

// DeleteUser removes the user and returns the deleted snapshot.
func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

// ListUsers returns one ascending-ordered page of users.
func (s *service) ListUsers(ctx context.Context, params pagination.Params) (*pagination.Page[UserDTO], error) {
	if err := pagination.Validate(params.Page, params.Size); err != nil {
		return nil, err
	}
	column, err := pagination.SortColumn(params.Sort, ListSortColumns)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count users")
	}
	rows, err := s.repo.Paginate(ctx, params.Offset(), params.Size, column)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}

	page := pagination.NewPage(NewUserDTOs(rows), params.Page, params.Size, total)
	return &page, nil
}

// CurrentUserID resolves the acting user from the request principal's email.
func (s *service) CurrentUserID(ctx context.Context, principalEmail string) (uuid.UUID, error) {
	email := strings.TrimSpace(principalEmail)
	if email == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no authenticated principal")
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user by email")
	}
	return user.ID, nil
}

// UpdateUser overwrites the profile fields and replaces the role set with the
// first supplied role. The mobile uniqueness pre-check is advisory; the
// unique index remains the arbiter under races.
func (s *service) UpdateUser(ctx context.Context, actorID, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Mobile != "" && input.Mobile != user.Mobile {
		if err := s.ensureMobileFree(ctx, input.Mobile, user.ID); err != nil {
			return nil, err
		}
	}

	if len(input.Roles) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one role required")
	}
	role, err := s.resolveRole(ctx, input.Roles[0])
	if err != nil {
		return nil, err
	}

	applyUpdateToUser(user, input)
	user.Touch(actorID)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Save(ctx, user); err != nil {
			// pre-checks are advisory; the unique indexes win under races
			if db.IsUniqueViolation(err, "idx_users_mobile") {
				return pkgerrors.New(pkgerrors.CodeConflict, "phone in use")
			}
			if db.IsUniqueViolation(err, "idx_users_email") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save user")
		}
		if err := txRepo.ReplaceRoles(ctx, user, []models.Role{*role}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace roles")
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	user.Roles = []models.Role{*role}
	dto := NewUserDTO(user)
	return &dto, nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find user")
	}
	return user, nil
}

func (s *service) ensureMobileFree(ctx context.Context, mobile string, selfID uuid.UUID) error {
	owner, err := s.repo.FindByMobile(ctx, mobile)
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
	role, err := s.repo.FindRoleByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("role %s not found", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find role")
	}
	return role, nil
}

func applyUpdateToUser(user *models.User, input UpdateUserInput) {
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
	user.Status = input.Status
	if user.Status == "" {
		user.Status = enums.UserStatusActive
	}
}
