package memory

import (
	"context"
	"sort"

	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// SessionRepository is the in-memory sessions and session_participations tables
type SessionRepository struct {
	store *Store
}

// checkReferences must be called with the store lock held
func (r *SessionRepository) checkReferences(session *models.Session) error {
	s := r.store
	if _, ok := s.teachers[session.TeacherID]; !ok {
		return apperrors.NewBadRequestError("teacher does not exist")
	}
	for _, uid := range session.UserIDs {
		if _, ok := s.users[uid]; !ok {
			return apperrors.NewBadRequestError("participant does not exist")
		}
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Create inserts a session with its participants
func (r *SessionRepository) Create(_ context.Context, session *models.Session) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.checkReferences(session); err != nil {
		return err
	}

	s.nextSessionID++
	now := s.now()
	session.ID = s.nextSessionID
	session.CreatedAt = now
	session.UpdatedAt = now
	session.UserIDs = dedupe(session.UserIDs)
	s.sessions[session.ID] = copySession(session)
	return nil
}

// GetAll retrieves every session ordered by id
func (r *SessionRepository) GetAll(_ context.Context) ([]*models.Session, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, copySession(session))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(_ context.Context, id int64) (*models.Session, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return copySession(session), nil
}

// Update overwrites a session's fields and replaces its participant list
func (r *SessionRepository) Update(_ context.Context, session *models.Session) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.ID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if err := r.checkReferences(session); err != nil {
		return err
	}

	session.CreatedAt = existing.CreatedAt
	session.UpdatedAt = s.now()
	session.UserIDs = dedupe(session.UserIDs)
	s.sessions[session.ID] = copySession(session)
	return nil
}

// Delete removes a session and its participations
func (r *SessionRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// AddParticipant appends userID to the session's members
func (r *SessionRepository) AddParticipant(_ context.Context, sessionID, userID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return apperrors.NewBadRequestError("participant does not exist")
	}
	if session.HasParticipant(userID) {
		return apperrors.ErrAlreadyParticipating
	}
	session.UserIDs = append(session.UserIDs, userID)
	return nil
}

// RemoveParticipant drops userID from the session's members
func (r *SessionRepository) RemoveParticipant(_ context.Context, sessionID, userID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if !session.HasParticipant(userID) {
		return apperrors.ErrNotParticipating
	}
	session.UserIDs = session.WithoutParticipant(userID)
	return nil
}
