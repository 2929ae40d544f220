package auth

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough-for-hs512-signing-0123456789"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(secret string, clock *fakeClock, exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   secret,
		Expiration:  exp,
		TokenIssuer: "yoga-app-test",
		Now:         clock.Now,
	}, zerolog.Nop())
}

func testPrincipal() *Principal {
	return NewPrincipal(7, "yogi@studio.com", "Yo", "Gi", false, "$2a$hash")
}

func TestJWTService_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	svc := newTestService(testSecret, clock, time.Hour)

	token, err := svc.GenerateToken(testPrincipal())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.ValidateToken(token))

	subject, err := svc.SubjectFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "yogi@studio.com", subject)
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	clock := &fakeClock{t: issuedAt}
	svc := newTestService(testSecret, clock, time.Hour)

	token, err := svc.GenerateToken(testPrincipal())
	require.NoError(t, err)

	expiresAt := issuedAt.Add(time.Hour)

	clock.t = expiresAt.Add(-time.Millisecond)
	assert.True(t, svc.ValidateToken(token), "one millisecond before expiry must be valid")

	clock.t = expiresAt
	assert.False(t, svc.ValidateToken(token), "exp == now is expired")

	clock.t = expiresAt.Add(time.Millisecond)
	assert.False(t, svc.ValidateToken(token), "one millisecond after expiry must be invalid")
}

func TestJWTService_ExpiryBoundaryAtSubSecondIssue(t *testing.T) {
	for _, exp := range []time.Duration{time.Second, 1500 * time.Millisecond, time.Hour} {
		issuedAt := time.Unix(1_700_000_000, int64(700*time.Millisecond))
		clock := &fakeClock{t: issuedAt}
		svc := newTestService(testSecret, clock, exp)

		token, err := svc.GenerateToken(testPrincipal())
		require.NoError(t, err)

		expiresAt := issuedAt.Add(exp)

		clock.t = issuedAt.Add(exp / 2)
		assert.True(t, svc.ValidateToken(token), "halfway through %s", exp)

		clock.t = expiresAt.Add(-time.Millisecond)
		assert.True(t, svc.ValidateToken(token), "one millisecond before expiry of %s", exp)

		clock.t = expiresAt
		assert.False(t, svc.ValidateToken(token), "exp == now for %s", exp)

		clock.t = expiresAt.Add(time.Millisecond)
		assert.False(t, svc.ValidateToken(token), "one millisecond after expiry of %s", exp)
	}
}

func TestJWTService_RegisteredExpRoundedUp(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, int64(700*time.Millisecond))
	svc := newTestService(testSecret, &fakeClock{t: issuedAt}, time.Second)

	token, err := svc.GenerateToken(testPrincipal())
	require.NoError(t, err)

	claims := &tokenClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_001_700), claims.ExpiresAtMs)
	assert.True(t, claims.ExpiresAt.Time.Equal(time.Unix(1_700_000_002, 0)), "registered exp %s", claims.ExpiresAt.Time)
}

func TestJWTService_SubjectReadableAfterExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	svc := newTestService(testSecret, clock, time.Minute)

	token, err := svc.GenerateToken(testPrincipal())
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour)
	assert.False(t, svc.ValidateToken(token))

	subject, err := svc.SubjectFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "yogi@studio.com", subject)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	issuer := newTestService("another-secret-entirely-another-secret-entirely-another-secret", clock, time.Hour)
	verifier := newTestService(testSecret, clock, time.Hour)

	token, err := issuer.GenerateToken(testPrincipal())
	require.NoError(t, err)

	assert.False(t, verifier.ValidateToken(token))
	_, err = verifier.SubjectFromToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsTamperedPayload(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	svc := newTestService(testSecret, clock, time.Hour)

	token, err := svc.GenerateToken(testPrincipal())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), "yogi@studio.com", "boss@studio.com", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	assert.False(t, svc.ValidateToken(strings.Join(parts, ".")))
}

func TestJWTService_RejectsMalformedAndUnsigned(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	svc := newTestService(testSecret, clock, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "yogi@studio.com",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "yogi@studio.com"})
	noExpToken, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)

	secondsOnly := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "yogi@studio.com",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	})
	secondsOnlyToken, err := secondsOnly.SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":       "",
		"garbage":     "not-a-jwt",
		"two parts":   "abc.def",
		"alg none":    noneToken,
		"missing exp": noExpToken,
		"no exp_ms":   secondsOnlyToken,
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, svc.ValidateToken(token))
		})
	}
}

func TestJWTService_GenerateTokenRequiresUsername(t *testing.T) {
	svc := newTestService(testSecret, &fakeClock{t: time.Now()}, time.Hour)

	_, err := svc.GenerateToken(nil)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.GenerateToken(NewPrincipal(1, "", "a", "b", false, ""))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "bearer abc.def.ghi", wantErr: true},
		{header: "Token abc.def.ghi", wantErr: true},
		{header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidFormat, "header %q", tt.header)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), testPrincipal())
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), p.ID())
	assert.Equal(t, "yogi@studio.com", p.Username())
}
