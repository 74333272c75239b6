package types

import (
	"fmt"

	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/samber/lo"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultSortKey   = "created_date"
	DefaultSortOrder = OrderDesc
)

// PaginationOptions is the page/size/sort spec shared by list endpoints.
// Page is 1-based. When either Page or Size is absent the query runs
// unpaginated and returns every matching row.
type PaginationOptions struct {
	Page      *int   `json:"page,omitempty" form:"page" validate:"omitempty,min=1"`
	Size      *int   `json:"size,omitempty" form:"size" validate:"omitempty,min=1,max=500"`
	SortKey   string `json:"sort_key,omitempty" form:"sort_key"`
	SortOrder string `json:"sort_order,omitempty" form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

func NewDefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		Page:      lo.ToPtr(1),
		Size:      lo.ToPtr(10),
		SortKey:   DefaultSortKey,
		SortOrder: DefaultSortOrder,
	}
}

// IsUnpaginated reports whether the query should return all matching rows.
func (p *PaginationOptions) IsUnpaginated() bool {
	return p == nil || p.Page == nil || p.Size == nil
}

func (p *PaginationOptions) GetPage() int {
	if p == nil || p.Page == nil {
		return 1
	}
	return *p.Page
}

func (p *PaginationOptions) GetSize() int {
	if p == nil || p.Size == nil {
		return 0
	}
	return *p.Size
}

// GetOffset converts the 1-based page number into a row offset.
func (p *PaginationOptions) GetOffset() int {
	return (p.GetPage() - 1) * p.GetSize()
}

func (p *PaginationOptions) GetSortKey() string {
	if p == nil || p.SortKey == "" {
		return DefaultSortKey
	}
	return p.SortKey
}

func (p *PaginationOptions) GetSortOrder() string {
	if p == nil || p.SortOrder == "" {
		return DefaultSortOrder
	}
	return p.SortOrder
}

// ValidateSortKey checks the requested sort key against the set of columns a
// given listing exposes. Sort keys reach the query layer as raw column
// references so they must be allow-listed before use.
func (p *PaginationOptions) ValidateSortKey(allowed ...string) error {
	if p == nil || p.SortKey == "" {
		return nil
	}
	if lo.Contains(allowed, p.SortKey) {
		return nil
	}
	return ierr.NewError(fmt.Sprintf("unknown sort key %q", p.SortKey)).
		WithHint("The requested sort column is not sortable").
		WithReportableDetails(map[string]any{"sort_key": p.SortKey}).
		Mark(ierr.ErrValidation)
}

// PaginationResponse represents standardized pagination metadata
type PaginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// ListResponse represents a paginated response with items
type ListResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewListResponse creates a new list response with pagination
func NewListResponse[T any](items []T, total int, p *PaginationOptions) ListResponse[T] {
	size := p.GetSize()
	if p.IsUnpaginated() {
		size = total
	}
	return ListResponse[T]{
		Items: items,
		Pagination: PaginationResponse{
			Total: total,
			Page:  p.GetPage(),
			Size:  size,
		},
	}
}
