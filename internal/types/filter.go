package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/samber/lo"
)

const (
	FilterDefaultLimit = 50
	FilterMaxLimit     = 1000
)

// OrderDirection is the sort direction for list queries.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// sortableColumns is the set of columns list endpoints may order by. The sort
// value is spliced into the ORDER BY clause, so anything outside this set is
// rejected at validation time.
var sortableColumns = map[string]struct{}{
	"created_at":    {},
	"updated_at":    {},
	"display_order": {},
	"status":        {},
	"amount":        {},
	"start_date":    {},
	"end_date":      {},
}

// IsSortableColumn reports whether col is safe to use in an ORDER BY clause.
func IsSortableColumn(col string) bool {
	_, ok := sortableColumns[col]
	return ok
}

// QueryFilter carries the common pagination and ordering options shared by
// every entity filter.
type QueryFilter struct {
	Limit  *int            `json:"limit,omitempty" form:"limit" validate:"omitempty,gte=1"`
	Offset *int            `json:"offset,omitempty" form:"offset" validate:"omitempty,gte=0"`
	Sort   *string         `json:"sort,omitempty" form:"sort"`
	Order  *OrderDirection `json:"order,omitempty" form:"order"`
}

// NewDefaultQueryFilter returns a filter with default pagination.
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FilterDefaultLimit),
		Offset: lo.ToPtr(0),
	}
}

// NewNoLimitQueryFilter returns a filter without pagination for internal use.
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Offset: lo.ToPtr(0),
	}
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return FilterDefaultLimit
	}
	return *f.Limit
}

func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f *QueryFilter) GetSort() string {
	if f == nil || f.Sort == nil {
		return "created_at"
	}
	return *f.Sort
}

func (f *QueryFilter) GetOrder() OrderDirection {
	if f == nil || f.Order == nil {
		return OrderDesc
	}
	return *f.Order
}

// IsUnlimited reports whether pagination is disabled.
func (f *QueryFilter) IsUnlimited() bool {
	return f != nil && f.Limit == nil
}

func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > FilterMaxLimit) {
		return ierr.NewErrorf("limit must be between 1 and %d", FilterMaxLimit).
			WithHint("Invalid pagination limit").
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must not be negative").
			WithHint("Invalid pagination offset").
			Mark(ierr.ErrValidation)
	}
	if f.Sort != nil && !IsSortableColumn(*f.Sort) {
		return ierr.NewErrorf("cannot sort by %q", *f.Sort).
			WithHint("Unsupported sort column").
			Mark(ierr.ErrValidation)
	}
	if f.Order != nil && *f.Order != OrderAsc && *f.Order != OrderDesc {
		return ierr.NewErrorf("invalid order direction: %s", *f.Order).
			WithHint("Order must be asc or desc").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListResponse is the standard envelope for paginated list endpoints.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewListResponse builds a ListResponse from items and pagination info.
func NewListResponse[T any](items []T, total, limit, offset int) ListResponse[T] {
	return ListResponse[T]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
