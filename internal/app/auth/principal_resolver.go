package auth

import (
	"context"
	"fmt"

	"github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	pkgauth "github.com/yogastudio/yoga-app/internal/pkg/auth"
)

// PrincipalResolver builds an authenticated principal from the stored user record.
// Nothing is cached; every call reads the store.
type PrincipalResolver struct {
	userRepo repositories.IUserRepository
}

// NewPrincipalResolver creates a new PrincipalResolver
func NewPrincipalResolver(userRepo repositories.IUserRepository) *PrincipalResolver {
	return &PrincipalResolver{userRepo: userRepo}
}

// LoadByEmail returns the principal for email, or apperrors.ErrUserNotFound
func (r *PrincipalResolver) LoadByEmail(ctx context.Context, email string) (*pkgauth.Principal, error) {
	user, err := r.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("loading principal: %w", err)
	}
	return pkgauth.NewPrincipal(user.ID, user.Email, user.FirstName, user.LastName, user.Admin, user.Password), nil
}
