package types

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

func TestQueryFilterValidateSort(t *testing.T) {
	for _, col := range []string{"created_at", "updated_at", "display_order", "amount"} {
		f := &QueryFilter{Sort: lo.ToPtr(col)}
		assert.NoError(t, f.Validate(), col)
	}

	for _, col := range []string{
		"password_hash",
		"(SELECT password_hash FROM users LIMIT 1)",
		"created_at; DROP TABLE users",
		"created_at desc",
		"",
	} {
		f := &QueryFilter{Sort: lo.ToPtr(col)}
		err := f.Validate()
		assert.Error(t, err, col)
		assert.True(t, ierr.IsValidation(err), col)
	}
}

func TestQueryFilterValidatePagination(t *testing.T) {
	assert.NoError(t, (*QueryFilter)(nil).Validate())
	assert.NoError(t, NewDefaultQueryFilter().Validate())

	assert.Error(t, (&QueryFilter{Limit: lo.ToPtr(0)}).Validate())
	assert.Error(t, (&QueryFilter{Limit: lo.ToPtr(FilterMaxLimit + 1)}).Validate())
	assert.Error(t, (&QueryFilter{Offset: lo.ToPtr(-1)}).Validate())
	assert.Error(t, (&QueryFilter{Order: lo.ToPtr(OrderDirection("sideways"))}).Validate())
}
