package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

func TestHandleAPIError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"not owner", apperrors.ErrNotAccountOwner, http.StatusUnauthorized, dto.ErrorCodeForbidden, "you can only delete your own account"},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrSessionNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "session not found"},
		{"already participating", apperrors.ErrAlreadyParticipating, http.StatusBadRequest, dto.ErrorCodeBadRequest, "user already participates in this session"},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, dto.MessageEmailAlreadyTaken},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Bad credentials"},
		{"forbidden", apperrors.NewForbiddenError("admins only"), http.StatusForbidden, dto.ErrorCodeForbidden, "admins only"},
		{"conflict", fmt.Errorf("saving: %w", apperrors.ErrConflict), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
		{"validation", apperrors.NewValidationError(map[string]string{"name": "name is required"}), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
		{"internal", errors.New("pq: connection refused on 10.0.0.3"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/session/1", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.message, resp.Message)
			assert.Equal(t, "/api/session/1", resp.Path)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "10.0.0.3")
		})
	}
}
