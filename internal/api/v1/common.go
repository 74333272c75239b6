package v1

import (
	"strconv"

	ierr "github.com/engagehq/engage-api/internal/errors"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a numeric path parameter. Every resource in the API is
// keyed by a serial integer id.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ierr.NewError("invalid id parameter").
			WithHint("The id in the URL must be a positive integer").
			WithReportableDetails(map[string]any{name: raw}).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}
