package store

import (
	"context"
	"fmt"
	"os"

	"healthbuddy/internal/models"
)

// Store is the data-access contract every backend implements identically.
// Exactly one backend is active per process, selected by configuration, and
// the rest of the application is written against this interface only.
//
// Conventions:
//   - Absence is a value, not an error: FindUserByCredentials and
//     GetActiveSession return (nil, nil) when nothing matches.
//   - FindUserByID and DeleteReading return ErrInvalidID when the id cannot
//     be parsed in the backend's native format, ErrNotFound when it parses
//     but matches nothing.
//   - CreateSession deactivates every other session before the new one
//     becomes visible, so at most one session is ever active.
//   - GetReadings returns newest first and degrades to an empty slice
//     rather than failing.
type Store interface {
	// Init establishes the backend connection and performs any schema or
	// index setup. It must be called once before any other operation.
	Init(ctx context.Context) error
	Close(ctx context.Context) error

	CreateUser(ctx context.Context, name, email, password string) (*models.User, error)
	FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)

	CreateSession(ctx context.Context, userID string) error
	GetActiveSession(ctx context.Context) (*models.User, error)
	ClearSession(ctx context.Context) error

	AddReading(ctx context.Context, userID string, systolic, diastolic, heartRate int) (*models.BloodPressureReading, error)
	GetReadings(ctx context.Context, userID string) ([]models.BloodPressureReading, error)
	DeleteReading(ctx context.Context, id string) error
}

// Config selects and parameterizes the active backend.
type Config struct {
	// Backend is one of "postgres", "sqlite", "mongo", "redis", "api".
	Backend string

	PostgresDSN string
	SQLitePath  string

	MongoURI      string
	MongoDatabase string

	RedisURL string

	APIBaseURL string
}

// FromEnv builds a Config from environment variables with the same defaults
// the original deployment used.
func FromEnv() Config {
	return Config{
		Backend: getEnv("STORAGE_BACKEND", "postgres"),
		PostgresDSN: fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s application_name=healthbuddy",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "healthbuddy"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
		),
		SQLitePath:    getEnv("SQLITE_PATH", "healthbuddy.db"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "healthbuddy"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:5000/api"),
	}
}

// Open constructs the configured backend. The connection itself is deferred
// to Init so callers own the lifecycle explicitly.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "postgres":
		return NewGormStore(GormConfig{Driver: "postgres", DSN: cfg.PostgresDSN}), nil
	case "sqlite":
		return NewGormStore(GormConfig{Driver: "sqlite", DSN: cfg.SQLitePath}), nil
	case "mongo":
		return NewMongoStore(cfg.MongoURI, cfg.MongoDatabase), nil
	case "redis":
		return NewRedisStore(cfg.RedisURL), nil
	case "api":
		return NewAPIStore(cfg.APIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
