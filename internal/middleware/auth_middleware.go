package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/pkg/auth"
)

// principalKey is the gin context key holding the authenticated principal
const principalKey = "principal"

// PrincipalLoader resolves a token subject to a principal
type PrincipalLoader interface {
	LoadByEmail(ctx context.Context, email string) (*auth.Principal, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	resolver   PrincipalLoader
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, resolver PrincipalLoader, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		resolver:   resolver,
		logger:     logger,
	}
}

// Authenticate populates the request principal from a valid bearer token. It never rejects:
// a missing, malformed, invalid or expired token, an unknown subject, or a panic while
// resolving all leave the request anonymous, and the next handler always runs exactly once.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := m.resolve(c); p != nil {
			c.Set(principalKey, p)
			c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (principal *auth.Principal) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("Recovered while authenticating request")
			principal = nil
		}
	}()

	tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil
	}

	if !m.jwtService.ValidateToken(tokenString) {
		return nil
	}

	subject, err := m.jwtService.SubjectFromToken(tokenString)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Could not read token subject")
		return nil
	}

	p, err := m.resolver.LoadByEmail(c.Request.Context(), subject)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Token subject did not resolve to a user")
		return nil
	}
	return p
}

// RequireAuth rejects anonymous requests with 401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, dto.MessageFullAuthRequired)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail).WithPath(c.Request.URL.Path))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal attached by Authenticate, if any
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(*auth.Principal); ok && p != nil {
			return p, true
		}
	}
	return auth.PrincipalFromContext(c.Request.Context())
}
