package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// MaxJWTExpirationMs is the largest token lifetime that still fits in a time.Duration
const MaxJWTExpirationMs = int64(math.MaxInt64 / int64(time.Millisecond))

// DefaultConfigPath is used when CONFIG_PATH is not set
const DefaultConfigPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret       string `yaml:"secret" env:"JWT_SECRET"`
		ExpirationMs int64  `yaml:"expiration_ms" env:"JWT_EXPIRATION_MS"`
		Issuer       string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level        string `yaml:"level" env:"LOG_LEVEL"`
		Format       string `yaml:"format" env:"LOG_FORMAT"`
		File         string `yaml:"file" env:"LOG_FILE"`
		RotationTime string `yaml:"rotation_time" env:"LOG_ROTATION_TIME"`
		MaxAge       string `yaml:"max_age" env:"LOG_MAX_AGE"`
	} `yaml:"logging"`

	Seed struct {
		Enabled       bool   `yaml:"enabled" env:"SEED_ENABLED"`
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`
}

// Load reads .env (if any), then the YAML file named by CONFIG_PATH or DefaultConfigPath,
// then applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return LoadConfig(GetEnv("CONFIG_PATH", DefaultConfigPath))
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"

	// Database defaults
	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "yoga"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	// JWT defaults
	config.JWT.ExpirationMs = 86400000
	config.JWT.Issuer = "yoga-app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "text"
	config.Logging.RotationTime = "24h"
	config.Logging.MaxAge = "168h"

	// Seed defaults
	config.Seed.Enabled = true
	config.Seed.AdminEmail = "yoga@studio.com"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database conn_max_lifetime: %w", err)
		}
	case DriverMemory:
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.JWT.ExpirationMs <= 0 {
		return fmt.Errorf("JWT expiration_ms must be positive")
	}
	if config.JWT.ExpirationMs > MaxJWTExpirationMs {
		return fmt.Errorf("JWT expiration_ms must not exceed %d", MaxJWTExpirationMs)
	}

	for name, value := range map[string]string{
		"server.read_timeout":   config.Server.ReadTimeout,
		"server.write_timeout":  config.Server.WriteTimeout,
		"logging.rotation_time": config.Logging.RotationTime,
		"logging.max_age":       config.Logging.MaxAge,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if config.Seed.Enabled && config.Seed.AdminEmail != "" && config.Seed.AdminPassword == "" {
		return fmt.Errorf("seed admin_password is required when seeding an admin account")
	}

	return nil
}

// JWTExpiration returns the configured token lifetime
func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWT.ExpirationMs) * time.Millisecond
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
