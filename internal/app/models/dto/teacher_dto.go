package dto

import (
	"time"

	"github.com/yogastudio/yoga-app/internal/app/models"
)

// TeacherDto is the public view of a teacher
type TeacherDto struct {
	ID        int64     `json:"id" example:"1"`
	LastName  string    `json:"lastName" example:"DELAHAYE"`
	FirstName string    `json:"firstName" example:"Margot"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTeacherDto maps a teacher to its DTO
func NewTeacherDto(t *models.Teacher) *TeacherDto {
	if t == nil {
		return nil
	}
	return &TeacherDto{
		ID:        t.ID,
		LastName:  t.LastName,
		FirstName: t.FirstName,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// NewTeacherDtos maps a list of teachers
func NewTeacherDtos(teachers []*models.Teacher) []*TeacherDto {
	out := make([]*TeacherDto, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, NewTeacherDto(t))
	}
	return out
}
