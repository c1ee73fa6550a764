package shared

import (
	"context"

	"github.com/google/uuid"
)

// DefaultPageSize is the page size used across list endpoints
const DefaultPageSize = 10

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Normalize clamps the filter's page and page size to usable values.
// A page below 1 becomes 1; a page size outside [1,100] falls back to
// the default.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = DefaultPageSize
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
}

// ClampPage lowers the page to the last non-empty page for the given
// total. Page 1 is returned for an empty result set.
func (f *Filter) ClampPage(total int64) {
	if total <= 0 {
		f.Page = 1
		return
	}
	lastPage := int((total + int64(f.PageSize) - 1) / int64(f.PageSize))
	if f.Page > lastPage {
		f.Page = lastPage
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
