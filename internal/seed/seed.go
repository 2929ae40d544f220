package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yogastudio/yoga-app/internal/app/models"
	appRepos "github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
	"github.com/yogastudio/yoga-app/internal/pkg/auth"
)

// DefaultTeachers are created at boot when absent
var DefaultTeachers = []appModels.Teacher{
	{FirstName: "Margot", LastName: "DELAHAYE"},
	{FirstName: "Hélène", LastName: "THIERCELIN"},
}

// Options controls the admin account
type Options struct {
	AdminEmail    string
	AdminPassword string
}

// CreateDefaultData creates the default teachers and the admin account if they don't exist.
// Individual failures are logged and collected; the rest of the data is still attempted.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, hasher auth.PasswordHasher, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Teachers/Admin)...")
	var finalErr error

	for _, t := range DefaultTeachers {
		exists, err := repos.TeacherRepository.ExistsByName(ctx, t.FirstName, t.LastName)
		if err != nil {
			lgr.Error().Err(err).Str("teacher", t.FirstName+" "+t.LastName).Msg("Error checking teacher")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}
		teacher := t
		if err := repos.TeacherRepository.Create(ctx, &teacher); err != nil {
			lgr.Error().Err(err).Str("teacher", t.FirstName+" "+t.LastName).Msg("Error creating teacher")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Int64("teacherID", teacher.ID).Str("lastName", teacher.LastName).Msg("Default teacher created")
	}

	if opts.AdminEmail == "" {
		return finalErr
	}

	exists, err := repos.UserRepository.EmailExists(ctx, opts.AdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking admin account")
		return errors.Join(finalErr, err)
	}
	if exists {
		return finalErr
	}

	hashed, err := hasher.Hash(opts.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:     opts.AdminEmail,
		Password:  hashed,
		FirstName: "Admin",
		LastName:  "Admin",
		Admin:     true,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Str("email", opts.AdminEmail).Msg("Admin account ready")

	return finalErr
}
