package memory

import (
	"context"
	"sort"

	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// TeacherRepository is the in-memory teachers table
type TeacherRepository struct {
	store *Store
}

// Create inserts a teacher
func (r *TeacherRepository) Create(_ context.Context, teacher *models.Teacher) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTeacherID++
	now := s.now()
	teacher.ID = s.nextTeacherID
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	s.teachers[teacher.ID] = copyTeacher(teacher)
	return nil
}

// GetAll retrieves all teachers ordered by id
func (r *TeacherRepository) GetAll(_ context.Context) ([]*models.Teacher, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Teacher, 0, len(s.teachers))
	for _, t := range s.teachers {
		out = append(out, copyTeacher(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return copyTeacher(t), nil
}

// ExistsByName checks for a teacher with exactly this first and last name
func (r *TeacherRepository) ExistsByName(_ context.Context, firstName, lastName string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.teachers {
		if t.FirstName == firstName && t.LastName == lastName {
			return true, nil
		}
	}
	return false, nil
}
