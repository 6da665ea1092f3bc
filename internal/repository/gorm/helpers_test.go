package gorm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

func TestNotFoundOrMapsWrappedRecordNotFound(t *testing.T) {
	wrapped := fmt.Errorf("loading plan: %w", gorm.ErrRecordNotFound)
	assert.True(t, ierr.IsNotFound(notFoundOr(wrapped, "plan", "plan-1")))

	direct := notFoundOr(gorm.ErrRecordNotFound, "plan", "plan-1")
	assert.True(t, ierr.IsNotFound(direct))

	other := notFoundOr(fmt.Errorf("connection reset"), "plan", "plan-1")
	assert.False(t, ierr.IsNotFound(other))
}
