package pagination

import (
	"fmt"
	"strings"

	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
)

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 25
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page int
	Size int
	Sort string
}

// Validate enforces the page/size contract shared by every paginated
// listing: page is zero-based and size must stay within (0, MaxSize].
func Validate(page, size int) error {
	if page < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "page number cannot be less than zero")
	}
	if size <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "page size must be greater than zero")
	}
	if size > MaxSize {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("page size must not be greater than %d", MaxSize))
	}
	return nil
}

// SortColumn resolves the requested sort column against a whitelist,
// guarding the ORDER BY clause from arbitrary input.
func SortColumn(requested string, allowed []string) (string, error) {
	column := strings.TrimSpace(requested)
	if column == "" {
		column = "id"
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, column) {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cannot sort by %q", requested))
}

// Offset converts the zero-based page into a row offset.
func (p Params) Offset() int {
	if p.Page < 0 || p.Size < 0 {
		return 0
	}
	return p.Page * p.Size
}

// Page is the listing result shape returned by paginated endpoints.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page view from the fetched rows and total row count.
func NewPage[T any](items []T, page, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
