// Package memory provides an in-process implementation of the repository interfaces.
// It enforces the same invariants as the PostgreSQL schema: unique email, teacher
// foreign key on sessions, and cascade of participations when a user or session goes away.
package memory

import (
	"sync"
	"time"

	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/app/repositories"
)

// Store holds every table behind a single mutex
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users    map[int64]*models.User
	teachers map[int64]*models.Teacher
	sessions map[int64]*models.Session

	nextUserID    int64
	nextTeacherID int64
	nextSessionID int64
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		users:    make(map[int64]*models.User),
		teachers: make(map[int64]*models.Teacher),
		sessions: make(map[int64]*models.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRepositories wires the in-memory repositories over a fresh store
func NewRepositories(opts ...Option) *repositories.Repositories {
	return NewStore(opts...).Repositories()
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:    &UserRepository{store: s},
		TeacherRepository: &TeacherRepository{store: s},
		SessionRepository: &SessionRepository{store: s},
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyTeacher(t *models.Teacher) *models.Teacher {
	c := *t
	return &c
}

func copySession(s *models.Session) *models.Session {
	c := *s
	c.UserIDs = append([]int64{}, s.UserIDs...)
	return &c
}
