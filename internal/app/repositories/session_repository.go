package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/db"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/dberrors"
	"github.com/yogastudio/yoga-app/internal/pkg/logger"
)

var sessionColumns = []string{"id", "name", "date", "description", "teacher_id", "created_at", "updated_at"}

// SessionRepository handles session and participation database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// mapSessionWriteError translates constraint violations into application errors
func mapSessionWriteError(err error) (error, bool) {
	switch {
	case dberrors.IsForeignKeyViolation(err, "sessions_teacher_id_fkey"):
		return apperrors.NewBadRequestError("teacher does not exist"), true
	case dberrors.IsForeignKeyViolation(err, "session_participations_user_id_fkey"):
		return apperrors.NewBadRequestError("participant does not exist"), true
	case dberrors.IsForeignKeyViolation(err, "session_participations_session_id_fkey"):
		return apperrors.ErrSessionNotFound, true
	}
	return err, false
}

// Create inserts a session and its participant rows in one transaction
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("name", "date", "description", "teacher_id").
		Values(session.Name, session.Date, session.Description, session.TeacherID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	err = db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return err
		}
		return r.insertParticipants(ctx, tx, session.ID, session.UserIDs)
	})
	if err != nil {
		if mapped, ok := mapSessionWriteError(err); ok {
			return mapped
		}
		logger.Error().Err(err).Str("name", session.Name).Msg("Error creating session")
		return fmt.Errorf("error creating session: %w", err)
	}
	if session.UserIDs == nil {
		session.UserIDs = []int64{}
	}
	return nil
}

func (r *SessionRepository) insertParticipants(ctx context.Context, tx pgx.Tx, sessionID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	ib := r.sb.Insert("session_participations").Columns("session_id", "user_id")
	for _, uid := range userIDs {
		ib = ib.Values(sessionID, uid)
	}
	sql, args, err := ib.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert participants query: %w", err)
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

// loadParticipants fills UserIDs for every session in the slice, ordered by join time
func (r *SessionRepository) loadParticipants(ctx context.Context, q querier, sessions []*models.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Session, len(sessions))
	ids := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		s.UserIDs = []int64{}
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	sql, args, err := r.sb.Select("session_id", "user_id").
		From("session_participations").
		Where(squirrel.Eq{"session_id": ids}).
		OrderBy("joined_at ASC", "user_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build participants query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error querying participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID, userID int64
		if err := rows.Scan(&sessionID, &userID); err != nil {
			return fmt.Errorf("error scanning participant row: %w", err)
		}
		if s, ok := byID[sessionID]; ok {
			s.UserIDs = append(s.UserIDs, userID)
		}
	}
	return rows.Err()
}

func scanSession(row pgx.Row) (*models.Session, error) {
	s := &models.Session{}
	if err := row.Scan(&s.ID, &s.Name, &s.Date, &s.Description, &s.TeacherID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// GetAll retrieves every session with its participants
func (r *SessionRepository) GetAll(ctx context.Context) ([]*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("sessions").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all sessions query")
		return nil, fmt.Errorf("error querying sessions: %w", err)
	}
	sessions := []*models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	if err := r.loadParticipants(ctx, r.db, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetByID retrieves a session with its participants
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	s, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error getting session by ID: %w", err)
	}

	if err := r.loadParticipants(ctx, r.db, []*models.Session{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// Update overwrites a session's fields and replaces its participant list
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Update("sessions").
		Set("name", session.Name).
		Set("date", session.Date).
		Set("description", session.Description).
		Set("teacher_id", session.TeacherID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": session.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}

	err = db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&session.CreatedAt, &session.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrSessionNotFound
			}
			return err
		}

		delSQL, delArgs, err := r.sb.Delete("session_participations").
			Where(squirrel.Eq{"session_id": session.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear participants query: %w", err)
		}
		if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
			return err
		}
		return r.insertParticipants(ctx, tx, session.ID, session.UserIDs)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		if mapped, ok := mapSessionWriteError(err); ok {
			return mapped
		}
		logger.Error().Err(err).Int64("sessionID", session.ID).Msg("Error updating session")
		return fmt.Errorf("error updating session: %w", err)
	}
	if session.UserIDs == nil {
		session.UserIDs = []int64{}
	}
	return nil
}

// Delete removes a session. Participations go with it through ON DELETE CASCADE.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error executing delete session query")
		return fmt.Errorf("error deleting session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// AddParticipant inserts a single participation row.
// The primary key on (session_id, user_id) rejects a concurrent duplicate.
func (r *SessionRepository) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	sql, args, err := r.sb.Insert("session_participations").
		Columns("session_id", "user_id").
		Values(sessionID, userID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add participant query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyParticipating
		}
		if mapped, ok := mapSessionWriteError(err); ok {
			return mapped
		}
		logger.Error().Err(err).Int64("sessionID", sessionID).Int64("userID", userID).Msg("Error adding participant")
		return fmt.Errorf("error adding participant: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a single participation row
func (r *SessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID int64) error {
	sql, args, err := r.sb.Delete("session_participations").
		Where(squirrel.Eq{"session_id": sessionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove participant query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", sessionID).Int64("userID", userID).Msg("Error removing participant")
		return fmt.Errorf("error removing participant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotParticipating
	}
	return nil
}
