package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// SessionService defines session CRUD and participation bookkeeping
type SessionService interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	FindAll(ctx context.Context) ([]*models.Session, error)
	// FindByID returns nil without error when the session does not exist
	FindByID(ctx context.Context, id int64) (*models.Session, error)
	Update(ctx context.Context, id int64, session *models.Session) (*models.Session, error)
	Delete(ctx context.Context, id int64) error
	Participate(ctx context.Context, sessionID, userID int64) error
	Unparticipate(ctx context.Context, sessionID, userID int64) error
}

type sessionServiceImpl struct {
	sessionRepo repositories.ISessionRepository
	teacherRepo repositories.ITeacherRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(
	sessionRepo repositories.ISessionRepository,
	teacherRepo repositories.ITeacherRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) SessionService {
	return &sessionServiceImpl{
		sessionRepo: sessionRepo,
		teacherRepo: teacherRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// checkReferences ensures the teacher and every listed participant exist
func (s *sessionServiceImpl) checkReferences(ctx context.Context, session *models.Session) error {
	if _, err := s.teacherRepo.GetByID(ctx, session.TeacherID); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewBadRequestError(fmt.Sprintf("teacher %d does not exist", session.TeacherID))
		}
		return fmt.Errorf("error checking teacher: %w", err)
	}
	for _, uid := range session.UserIDs {
		if _, err := s.userRepo.GetByID(ctx, uid); err != nil {
			if apperrors.Is(err, apperrors.ErrResourceNotFound) {
				return apperrors.NewBadRequestError(fmt.Sprintf("user %d does not exist", uid))
			}
			return fmt.Errorf("error checking participant: %w", err)
		}
	}
	return nil
}

func (s *sessionServiceImpl) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	if err := s.checkReferences(ctx, session); err != nil {
		return nil, err
	}
	session.ID = 0
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if apperrors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	s.logger.Info().Int64("sessionID", session.ID).Msg("Session created")
	return session, nil
}

func (s *sessionServiceImpl) FindAll(ctx context.Context) ([]*models.Session, error) {
	sessions, err := s.sessionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionServiceImpl) FindByID(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return session, nil
}

// Update overwrites the session identified by id; the body's users replace the membership list
func (s *sessionServiceImpl) Update(ctx context.Context, id int64, session *models.Session) (*models.Session, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if err := s.checkReferences(ctx, session); err != nil {
		return nil, err
	}

	session.ID = id
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating session: %w", err)
	}
	return session, nil
}

func (s *sessionServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrSessionNotFound
		}
		return fmt.Errorf("error deleting session: %w", err)
	}
	s.logger.Info().Int64("sessionID", id).Msg("Session deleted")
	return nil
}

// Participate adds userID to the session. Missing session or user is NotFound; an existing
// member is a BadRequest, so repeating the call fails.
func (s *sessionServiceImpl) Participate(ctx context.Context, sessionID, userID int64) error {
	session, err := s.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return apperrors.ErrSessionNotFound
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	if session.HasParticipant(userID) {
		return apperrors.ErrAlreadyParticipating
	}

	if err := s.sessionRepo.AddParticipant(ctx, sessionID, userID); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrBadRequest) {
			return err
		}
		return fmt.Errorf("error adding participant: %w", err)
	}
	return nil
}

// Unparticipate removes userID from the session. Only membership is checked, not whether
// the user record still exists.
func (s *sessionServiceImpl) Unparticipate(ctx context.Context, sessionID, userID int64) error {
	session, err := s.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return apperrors.ErrSessionNotFound
	}

	if !session.HasParticipant(userID) {
		return apperrors.ErrNotParticipating
	}

	if err := s.sessionRepo.RemoveParticipant(ctx, sessionID, userID); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrBadRequest) {
			return err
		}
		return fmt.Errorf("error removing participant: %w", err)
	}
	return nil
}
