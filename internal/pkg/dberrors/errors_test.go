package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "sessions_teacher_id_fkey"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsDuplicateConstraintError(unique, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(unique, "other_key"))
	assert.False(t, IsForeignKeyViolation(unique, ""))

	assert.True(t, IsForeignKeyViolation(fk, ""))
	assert.True(t, IsForeignKeyViolation(fk, "sessions_teacher_id_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "session_participations_user_id_fkey"))

	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
