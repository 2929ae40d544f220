package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BearerPrefix is the literal Authorization header prefix accepted by the API.
const BearerPrefix = "Bearer "

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey   string
	Expiration  time.Duration
	TokenIssuer string
	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

// JWTService issues and verifies signed bearer tokens whose subject is the user's email.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
	logger zerolog.Logger
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig, logger zerolog.Logger) *JWTService {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &JWTService{
		config: config,
		now:    now,
		logger: logger,
	}
}

// Expiration returns the configured token lifetime.
func (s *JWTService) Expiration() time.Duration {
	return s.config.Expiration
}

// tokenClaims carries the expiry in milliseconds next to the registered claims. The
// registered exp only has second precision, so it is rounded up and exp_ms decides.
type tokenClaims struct {
	jwt.RegisteredClaims
	ExpiresAtMs int64 `json:"exp_ms"`

	now func() time.Time
}

// Validate implements jwt.ClaimsValidator. The token is expired once now reaches exp_ms.
func (c *tokenClaims) Validate() error {
	if c.ExpiresAtMs <= 0 {
		return fmt.Errorf("%w: exp_ms", jwt.ErrTokenRequiredClaimMissing)
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	if now().UnixMilli() >= c.ExpiresAtMs {
		return jwt.ErrTokenExpired
	}
	return nil
}

// ceilSecond rounds t up to the next whole second.
func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Before(t) {
		return truncated.Add(time.Second)
	}
	return truncated
}

// GenerateToken signs a token for p valid from now until now+expiration, to the millisecond.
func (s *JWTService) GenerateToken(p *Principal) (string, error) {
	if p == nil || p.Username() == "" {
		return "", ErrInvalidToken
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expiresAt)),
			Issuer:    s.config.TokenIssuer,
			ID:        uuid.New().String(),
		},
		ExpiresAtMs: expiresAt.UnixMilli(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.config.SecretKey), nil
}

// ValidateToken reports whether tokenString is well formed, correctly signed and unexpired.
// The failure reason is logged but never returned.
func (s *JWTService) ValidateToken(tokenString string) bool {
	if tokenString == "" {
		return false
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &tokenClaims{now: s.now}, s.keyFunc)
	if err != nil {
		s.logger.Debug().Str("reason", tokenFailureReason(err)).Msg("JWT rejected")
		return false
	}
	return token.Valid
}

// SubjectFromToken returns the subject claim of a correctly signed token. Time claims are
// not checked here; callers are expected to have run ValidateToken first.
func (s *JWTService) SubjectFromToken(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := &jwt.RegisteredClaims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing claim"
	default:
		return "invalid"
	}
}

// ExtractBearerToken extracts the token from the Authorization header. Only the exact
// "Bearer " prefix is accepted, and an empty remainder counts as no token.
func ExtractBearerToken(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", ErrInvalidFormat
	}
	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return "", ErrInvalidFormat
	}
	return token, nil
}
