package memory

import (
	"context"

	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// UserRepository is the in-memory users table
type UserRepository struct {
	store *Store
}

// Create inserts a user, rejecting an email that is already taken (exact match)
func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	s.nextUserID++
	now := s.now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = copyUser(user)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(u), nil
}

// GetByEmail retrieves a user by exact, case-sensitive email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// EmailExists checks whether an account already uses email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes a user and its participations
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)

	for _, session := range s.sessions {
		if session.HasParticipant(id) {
			session.UserIDs = session.WithoutParticipant(id)
		}
	}
	return nil
}
