package services

import (
	"context"
	"fmt"

	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// TeacherService defines the read-only teacher operations
type TeacherService interface {
	FindAll(ctx context.Context) ([]*models.Teacher, error)
	// FindByID returns nil without error when the teacher does not exist
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
}

type teacherServiceImpl struct {
	teacherRepo repositories.ITeacherRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo repositories.ITeacherRepository) TeacherService {
	return &teacherServiceImpl{teacherRepo: teacherRepo}
}

func (s *teacherServiceImpl) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

func (s *teacherServiceImpl) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return teacher, nil
}
