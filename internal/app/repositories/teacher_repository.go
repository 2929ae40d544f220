package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/logger"
)

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a teacher
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("first_name", "last_name").
		Values(teacher.FirstName, teacher.LastName).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// GetAll retrieves all teachers ordered by id
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	sql, args, err := r.sb.Select("id", "first_name", "last_name", "created_at", "updated_at").
		From("teachers").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all teachers query")
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		t := &models.Teacher{}
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}
	return teachers, nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select("id", "first_name", "last_name", "created_at", "updated_at").
		From("teachers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	t := &models.Teacher{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher by ID: %w", err)
	}
	return t, nil
}

// ExistsByName checks for a teacher with exactly this first and last name
func (r *TeacherRepository) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("teachers").
		Where(squirrel.Eq{"first_name": firstName, "last_name": lastName}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build teacher exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking teacher existence: %w", err)
	}
	return exists, nil
}
