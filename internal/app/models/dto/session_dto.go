package dto

import (
	"time"

	"github.com/yogastudio/yoga-app/internal/app/models"
	"github.com/yogastudio/yoga-app/internal/pkg/validation"
)

// SessionDto is both the request body for create/update and the response shape.
// Pointer fields distinguish "missing" from zero values during validation.
type SessionDto struct {
	ID          int64      `json:"id,omitempty" example:"1"`
	Name        string     `json:"name" validate:"required,max=50" example:"Morning flow"`
	Date        *time.Time `json:"date" validate:"required" example:"2025-05-01T08:00:00Z"`
	TeacherID   *int64     `json:"teacher_id" validate:"required" example:"1"`
	Description *string    `json:"description" validate:"required,max=2500" example:"Gentle vinyasa"`
	Users       []int64    `json:"users"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the request body
func (d *SessionDto) Validate() error {
	return validation.Struct(d)
}

// ToModel converts a validated DTO into a session. Users are de-duplicated, first occurrence wins.
func (d *SessionDto) ToModel() *models.Session {
	s := &models.Session{
		ID:      d.ID,
		Name:    d.Name,
		UserIDs: make([]int64, 0, len(d.Users)),
	}
	if d.Date != nil {
		s.Date = *d.Date
	}
	if d.TeacherID != nil {
		s.TeacherID = *d.TeacherID
	}
	if d.Description != nil {
		s.Description = *d.Description
	}

	seen := make(map[int64]struct{}, len(d.Users))
	for _, id := range d.Users {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.UserIDs = append(s.UserIDs, id)
	}
	return s
}

// NewSessionDto maps a session to its DTO
func NewSessionDto(s *models.Session) *SessionDto {
	if s == nil {
		return nil
	}
	date := s.Date
	teacherID := s.TeacherID
	description := s.Description
	createdAt := s.CreatedAt
	updatedAt := s.UpdatedAt

	users := s.UserIDs
	if users == nil {
		users = []int64{}
	}

	return &SessionDto{
		ID:          s.ID,
		Name:        s.Name,
		Date:        &date,
		TeacherID:   &teacherID,
		Description: &description,
		Users:       users,
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}
}

// NewSessionDtos maps a list of sessions
func NewSessionDtos(sessions []*models.Session) []*SessionDto {
	out := make([]*SessionDto, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionDto(s))
	}
	return out
}
