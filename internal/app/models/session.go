package models

import "time"

// Session defines a yoga session based on the 'sessions' table.
// UserIDs is the materialized content of the session_participations join table.
type Session struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Date        time.Time `json:"date" db:"date"`
	Description string    `json:"description" db:"description"`
	TeacherID   int64     `json:"teacherId" db:"teacher_id"`
	UserIDs     []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// HasParticipant reports whether userID is in the session's membership list.
func (s *Session) HasParticipant(userID int64) bool {
	for _, id := range s.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WithoutParticipant returns the membership list with userID removed, keeping the others in order.
func (s *Session) WithoutParticipant(userID int64) []int64 {
	out := make([]int64, 0, len(s.UserIDs))
	for _, id := range s.UserIDs {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
