package files

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starterhq/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
)

const uploadPathPrefix = "/uploads/"

// FileDTO is the metadata payload returned to clients (never the blob).
type FileDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreFileInput captures the multipart upload fields.
type StoreFileInput struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}

// Service exposes file blob operations.
type Service interface {
	StoreFile(ctx context.Context, actorID uuid.UUID, input StoreFileInput) (*FileDTO, error)
	GetFile(ctx context.Context, id uuid.UUID) (*models.File, error)
	ListFiles(ctx context.Context) ([]FileDTO, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs a file service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("files repository required")
	}
	return &service{repo: repo}, nil
}

// StoreFile persists the uploaded bytes owned by the acting user.
func (s *service) StoreFile(ctx context.Context, actorID uuid.UUID, input StoreFileInput) (*FileDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	if len(input.Content) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is empty")
	}
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no authenticated principal")
	}

	file := &models.File{
		Name:    name,
		Path:    uploadPathPrefix + name,
		Type:    input.ContentType,
		Size:    input.Size,
		Content: input.Content,
		UserID:  actorID,
	}
	if file.Size == 0 {
		file.Size = int64(len(input.Content))
	}

	if err := s.repo.Create(ctx, file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert file")
	}
	dto := newFileDTO(file)
	return &dto, nil
}

// GetFile is a non-throwing lookup: a missing id yields (nil, nil).
func (s *service) GetFile(ctx context.Context, id uuid.UUID) (*models.File, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find file")
	}
	return file, nil
}

// ListFiles returns metadata for every stored file.
func (s *service) ListFiles(ctx context.Context) ([]FileDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list files")
	}
	out := make([]FileDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newFileDTO(&rows[i]))
	}
	return out, nil
}

// DeleteFile removes the row, surfacing NOT_FOUND on absence.
func (s *service) DeleteFile(ctx context.Context, id uuid.UUID) error {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if file == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
	}
	if err := s.repo.Delete(ctx, file); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete file")
	}
	return nil
}

func newFileDTO(file *models.File) FileDTO {
	return FileDTO{
		ID:        file.ID,
		Name:      file.Name,
		Path:      file.Path,
		Type:      file.Type,
		Size:      file.Size,
		UserID:    file.UserID,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
}
