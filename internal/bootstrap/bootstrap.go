package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yogastudio/yoga-app/internal/app/auth"
	appControllers "github.com/yogastudio/yoga-app/internal/app/controllers"
	appMigrations "github.com/yogastudio/yoga-app/internal/app/migrations"
	appRepos "github.com/yogastudio/yoga-app/internal/app/repositories"
	"github.com/yogastudio/yoga-app/internal/app/repositories/memory"
	appRoutes "github.com/yogastudio/yoga-app/internal/app/routes"
	appServices "github.com/yogastudio/yoga-app/internal/app/services"
	"github.com/yogastudio/yoga-app/internal/config"
	"github.com/yogastudio/yoga-app/internal/db"
	appMiddleware "github.com/yogastudio/yoga-app/internal/middleware"
	pkgAuth "github.com/yogastudio/yoga-app/internal/pkg/auth"
	"github.com/yogastudio/yoga-app/internal/pkg/helpers"
	"github.com/yogastudio/yoga-app/internal/pkg/logger"
	"github.com/yogastudio/yoga-app/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Hasher            pkgAuth.PasswordHasher
	JWTService        *pkgAuth.JWTService
	PrincipalResolver *appAuth.PrincipalResolver

	AuthService    *appServices.AuthService
	UserService    appServices.UserService
	TeacherService appServices.TeacherService
	SessionService appServices.SessionService

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr, err := SetupLogger(cfg)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg, adding the rotated log file when configured.
func SetupLogger(cfg *config.Config) (zerolog.Logger, error) {
	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	loggerCfg := logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		Output: os.Stdout,
	}

	if cfg.Logging.File != "" {
		fileWriter, err := logger.NewRotatingWriter(logger.FileConfig{
			Path:         cfg.Logging.File,
			RotationTime: helpers.DurationOrDefault(logger.Default(), "logging.rotation_time", cfg.Logging.RotationTime, 0),
			MaxAge:       helpers.DurationOrDefault(logger.Default(), "logging.max_age", cfg.Logging.MaxAge, 0),
		})
		if err != nil {
			return zerolog.Logger{}, err
		}
		loggerCfg.File = fileWriter
	}

	logger.Configure(loggerCfg)

	lgr := log.Logger
	lgr.Info().
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Str("logFile", cfg.Logging.File).
		Msg("Logger configured")
	return lgr, nil
}

// SetupStore opens the configured store. For PostgreSQL the connection is established and
// migrations run; the returned database is nil for the memory driver.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return memory.NewRepositories(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewRepositories(database.Pool), database, nil
}

// BuildDependencies initializes services, middleware and controllers over repos.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Repos:  repos,
		Hasher: pkgAuth.NewBcryptHasher(pkgAuth.BcryptCost),
		Logger: lgr,
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		Expiration:  cfg.JWTExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	}, lgr.With().Str("component", "jwt").Logger())

	deps.PrincipalResolver = appAuth.NewPrincipalResolver(repos.UserRepository)

	deps.AuthService = appServices.NewAuthService(
		repos.UserRepository,
		deps.PrincipalResolver,
		deps.Hasher,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(repos.UserRepository, lgr)
	deps.TeacherService = appServices.NewTeacherService(repos.TeacherRepository)
	deps.SessionService = appServices.NewSessionService(
		repos.SessionRepository,
		repos.TeacherRepository,
		repos.UserRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.PrincipalResolver, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService),
		User:    appControllers.NewUserController(deps.UserService),
		Teacher: appControllers.NewTeacherController(deps.TeacherService),
		Session: appControllers.NewSessionController(deps.SessionService),
	}

	return deps
}

// SeedDefaults creates the default teachers and admin account when seeding is enabled.
// Failures are logged and do not stop startup.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if !cfg.Seed.Enabled {
		return
	}
	opts := seed.Options{AdminEmail: cfg.Seed.AdminEmail, AdminPassword: cfg.Seed.AdminPassword}
	if err := seed.CreateDefaultData(ctx, deps.Repos, deps.Hasher, opts, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
