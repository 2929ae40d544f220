package auth

import (
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	pkgauth "github.com/yogastudio/yoga-app/internal/pkg/auth"
)

// ValidateAccountOwnership allows the operation only when the principal's username equals the
// target user's email. The comparison is exact: "TEST@EXAMPLE.COM" does not own "test@example.com".
func ValidateAccountOwnership(principal *pkgauth.Principal, user *models.User) error {
	if principal == nil {
		return apperrors.ErrUnauthorized
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if principal.Username() != user.Email {
		return apperrors.ErrNotAccountOwner
	}
	return nil
}
