// Package config defines the application configuration and its loading logic.
// Configuration is read from environment variables (with the STAFF_ prefix)
// and an optional config.yaml file; environment variables take precedence.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication-related settings. The secret key is read
// at startup and reserved for request signing; no endpoint currently enforces
// authentication.
type AuthConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}
