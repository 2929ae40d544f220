package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// ParseIDParam reads a numeric path parameter. Anything that is not a base-10 int64 is a bad request.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a valid number", name))
	}
	return id, nil
}
