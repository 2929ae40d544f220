package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yogastudio/yoga-app/internal/app/models/dto"
)

// Validatable is implemented by request DTOs
type Validatable interface {
	Validate() error
}

// BindJSON decodes the request body into obj and runs its Validate method. On failure the
// 400 response is written and false is returned; the handler should just return.
func BindJSON(c *gin.Context, obj Validatable) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.HandleValidationError(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail).WithPath(c.Request.URL.Path))
		return false
	}

	if err := obj.Validate(); err != nil {
		HandleAPIError(c, err)
		return false
	}
	return true
}
