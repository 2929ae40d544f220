package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appauth "github.com/yogastudio/yoga-app/internal/app/auth"
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/auth"
)

// UserService defines the interface for user account operations
type UserService interface {
	// FindByID returns nil without error when the user does not exist
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// Delete removes the account identified by id if principal owns it
	Delete(ctx context.Context, principal *auth.Principal, id int64) error
}

type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userServiceImpl) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, principal *auth.Principal, id int64) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	if err := appauth.ValidateAccountOwnership(principal, user); err != nil {
		s.logger.Warn().Int64("userID", id).Msg("Refused to delete an account not owned by the caller")
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	s.logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}
