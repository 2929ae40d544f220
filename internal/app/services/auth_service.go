package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appauth "github.com/yogastudio/yoga-app/internal/app/auth"
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/auth"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   repositories.IUserRepository
	resolver   *appauth.PrincipalResolver
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	resolver *appauth.PrincipalResolver,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		resolver:   resolver,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a non-admin account. An email already in use (exact match) is rejected
// with apperrors.ErrEmailAlreadyExists and nothing is written.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Admin:     false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return err
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User registered")
	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.JWTResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	principal, err := s.resolver.LoadByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Debug().Msg("Login attempt for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(principal.PasswordHash(), req.Password) {
		s.logger.Debug().Int64("userID", principal.ID()).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(principal)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.JWTResponse{
		Token:     token,
		Type:      dto.TokenTypeBearer,
		ID:        principal.ID(),
		Username:  principal.Username(),
		FirstName: principal.FirstName(),
		LastName:  principal.LastName(),
		Admin:     principal.IsAdmin(),
	}, nil
}
