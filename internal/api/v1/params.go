package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/types"
)

// pagination reads limit/offset query params, falling back to the list
// defaults when absent or malformed.
func pagination(c *gin.Context) (limit, offset int) {
	limit = types.FilterDefaultLimit
	offset = 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
