package config

import (
	"net/url"
	"strings"
	"time"
)

// Backend identifies which document store implementation serves tasks.
type Backend string

// Supported store backends, selected by the scheme of the database URL.
const (
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	StaticDir       string        `mapstructure:"static_dir"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the document store connection settings.
type DatabaseConfig struct {
	// URL is the store connection string. Its scheme selects the backend.
	URL string `mapstructure:"url" validate:"required,dburl"`
	// Name is the Mongo database holding the task collection.
	Name string `mapstructure:"name" validate:"required"`
	// Collection is the Mongo collection holding task documents.
	Collection     string        `mapstructure:"collection" validate:"required"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

// Backend returns the store backend implied by the URL scheme, or "" if the
// scheme is not supported.
func (c DatabaseConfig) Backend() Backend {
	return backendForURL(c.URL)
}

func backendForURL(raw string) Backend {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return BackendMongo
	case "postgres", "postgresql":
		return BackendPostgres
	default:
		return ""
	}
}
