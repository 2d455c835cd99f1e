package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. PHYSREF_SERVER_PORT.
const EnvPrefix = "PHYSREF"

// Default values
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultDatabaseURL            = "sqlite:///physics.db"
	DefaultSessionLifetimeMinutes = 7 * 24 * 60
	DefaultBcryptCost             = 10
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the file. An empty
// path skips the file; a missing named file is an error.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("auth.session_lifetime_minutes", DefaultSessionLifetimeMinutes)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	// Registered so AutomaticEnv can populate it during Unmarshal.
	v.SetDefault("auth.session_secret", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("dburl", func(fl validator.FieldLevel) bool {
		return DatabaseConfig{URL: fl.Field().String()}.Backend() != ""
	}); err != nil {
		return fmt.Errorf("failed to register validation: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}
