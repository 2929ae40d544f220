package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yogastudio/yoga-app/internal/app/models"
)

// IUserRepository defines the interface for user-related storage operations.
// Lookups of a missing row return apperrors.ErrUserNotFound.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ITeacherRepository defines the interface for teacher storage operations.
type ITeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	ExistsByName(ctx context.Context, firstName, lastName string) (bool, error)
}

// ISessionRepository defines the interface for session and participation storage.
// Sessions are always returned with their participant ids materialized.
type ISessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetAll(ctx context.Context) ([]*models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    IUserRepository
	TeacherRepository ITeacherRepository
	SessionRepository ISessionRepository
}

// NewRepositories initializes all PostgreSQL-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		TeacherRepository: NewTeacherRepository(db),
		SessionRepository: NewSessionRepository(db),
	}
}
