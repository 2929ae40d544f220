package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/app/repositories/memory"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	pkgauth "github.com/yogastudio/yoga-app/internal/pkg/auth"
)

func TestValidateAccountOwnership(t *testing.T) {
	target := &models.User{ID: 1, Email: "test@example.com"}

	tests := []struct {
		name      string
		principal *pkgauth.Principal
		wantErr   error
	}{
		{name: "owner", principal: pkgauth.NewPrincipal(1, "test@example.com", "", "", false, "")},
		{name: "other account", principal: pkgauth.NewPrincipal(2, "other@example.com", "", "", false, ""), wantErr: apperrors.ErrPermissionDenied},
		{name: "different case", principal: pkgauth.NewPrincipal(1, "TEST@EXAMPLE.COM", "", "", false, ""), wantErr: apperrors.ErrPermissionDenied},
		{name: "admin is not owner", principal: pkgauth.NewPrincipal(3, "yoga@studio.com", "", "", true, ""), wantErr: apperrors.ErrPermissionDenied},
		{name: "anonymous", principal: nil, wantErr: apperrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountOwnership(tt.principal, target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPrincipalResolver_LoadByEmail(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()
	user := &models.User{Email: "yogi@example.com", FirstName: "Yogi", LastName: "Bear", Admin: true, Password: "$2a$hash"}
	require.NoError(t, repos.UserRepository.Create(ctx, user))

	resolver := NewPrincipalResolver(repos.UserRepository)

	p, err := resolver.LoadByEmail(ctx, "yogi@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.ID())
	assert.Equal(t, "yogi@example.com", p.Username())
	assert.Equal(t, "Yogi", p.FirstName())
	assert.Equal(t, "Bear", p.LastName())
	assert.True(t, p.IsAdmin())
	assert.Equal(t, "$2a$hash", p.PasswordHash())

	_, err = resolver.LoadByEmail(ctx, "YOGI@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
