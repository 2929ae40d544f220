package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

type sample struct {
	Email string `json:"email" validate:"required,email,max=50"`
	Name  string `json:"firstName" validate:"required,min=3,max=20"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Email: "a@b.io", Name: "Jane"}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Email: "invalidemail", Name: "Jo"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	details := apperrors.DetailsOf(err)
	require.NotNil(t, details)
	assert.Equal(t, "email must be a valid email address", details["email"])
	assert.Equal(t, "firstName must be at least 3 characters", details["firstName"])
}

func TestStruct_Required(t *testing.T) {
	err := Struct(sample{})
	require.Error(t, err)

	details := apperrors.DetailsOf(err)
	assert.Equal(t, "email is required", details["email"])
	assert.Equal(t, "firstName is required", details["firstName"])
}
