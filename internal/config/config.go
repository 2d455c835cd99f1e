package config

import (
	"strings"
	"time"
)

// Storage backends selected by the database URL scheme.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// SecureCookies marks session and flash cookies Secure. Enable behind TLS.
	SecureCookies bool `mapstructure:"secure_cookies"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL selects the backend by scheme: sqlite:///path.db or postgres://...
	URL string `mapstructure:"url" validate:"required,dburl"`
}

// Backend returns the storage backend named by the URL scheme.
func (d DatabaseConfig) Backend() string {
	scheme, _, _ := strings.Cut(d.URL, "://")
	switch scheme {
	case "sqlite":
		return BackendSQLite
	case "postgres", "postgresql":
		return BackendPostgres
	default:
		return ""
	}
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	SessionSecret          string `mapstructure:"session_secret" validate:"required,min=32"`
	SessionLifetimeMinutes int    `mapstructure:"session_lifetime_minutes" validate:"required,gt=0,lte=525600"`
	BcryptCost             int    `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// SessionLifetime returns the session lifetime as a duration.
func (a AuthConfig) SessionLifetime() time.Duration {
	return time.Duration(a.SessionLifetimeMinutes) * time.Minute
}
