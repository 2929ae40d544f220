package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogastudio/yoga-app/internal/app/repositories/memory"
	"github.com/yogastudio/yoga-app/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateDefaultData_Idempotent(t *testing.T) {
	repos := memory.NewRepositories()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	opts := Options{AdminEmail: "yoga@studio.com", AdminPassword: "test!1234"}
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, repos, hasher, opts, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos, hasher, opts, zerolog.Nop()))

	teachers, err := repos.TeacherRepository.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "DELAHAYE", teachers[0].LastName)
	assert.Equal(t, "THIERCELIN", teachers[1].LastName)

	admin, err := repos.UserRepository.GetByEmail(ctx, "yoga@studio.com")
	require.NoError(t, err)
	assert.True(t, admin.Admin)
	assert.True(t, hasher.Verify(admin.Password, "test!1234"))
}

func TestCreateDefaultData_NoAdmin(t *testing.T) {
	repos := memory.NewRepositories()
	ctx := context.Background()

	require.NoError(t, CreateDefaultData(ctx, repos, auth.NewBcryptHasher(bcrypt.MinCost), Options{}, zerolog.Nop()))

	exists, err := repos.UserRepository.EmailExists(ctx, "yoga@studio.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
