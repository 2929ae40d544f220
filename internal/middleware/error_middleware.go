package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/logger"
)

// clientMessage returns the message of the first CustomError in err's chain, or fallback.
// Only application-authored messages reach the client.
func clientMessage(err error, fallback string) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// HandleAPIError maps an application error to a status code and the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error while serving request")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail).WithPath(c.Request.URL.Path))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	// Deleting someone else's account is reported as 401, unlike other permission failures
	case errors.Is(err, apperrors.ErrNotAccountOwner):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeForbidden, clientMessage(err, "Unauthorized"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, clientMessage(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.HandleValidationError(err)
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, clientMessage(err, "Bad request"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, dto.MessageEmailAlreadyTaken)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Bad credentials")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, dto.MessageFullAuthRequired)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, clientMessage(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, clientMessage(err, "Conflict"))
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	}
}
