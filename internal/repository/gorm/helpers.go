package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// notFoundOr maps gorm's record-not-found to an ErrNotFound-marked error and
// wraps anything else as a database error.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("%s not found", entity).
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).
		WithHintf("Failed to fetch %s", entity).
		Mark(ierr.ErrDatabase)
}

func dbError(err error, action, entity string) error {
	return ierr.WithError(err).
		WithHintf("Failed to %s %s", action, entity).
		Mark(ierr.ErrDatabase)
}

// applyQueryFilter applies pagination and ordering from a QueryFilter.
func applyQueryFilter(query *gorm.DB, f *types.QueryFilter) *gorm.DB {
	if f == nil {
		f = types.NewDefaultQueryFilter()
	}
	// Validation rejects unknown sort columns upstream; guard again here since
	// the value is spliced into raw SQL.
	sort := f.GetSort()
	if !types.IsSortableColumn(sort) {
		sort = "created_at"
	}
	query = query.Order(fmt.Sprintf("%s %s", sort, f.GetOrder()))
	if !f.IsUnlimited() {
		query = query.Limit(f.GetLimit())
	}
	return query.Offset(f.GetOffset())
}
