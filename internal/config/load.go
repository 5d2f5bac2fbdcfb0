package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the server reads,
// e.g. TASKLIST_SERVER_PORT.
const EnvPrefix = "TASKLIST"

// Load configuration from environment variables and optionally .env and
// config files. Environment variables take precedence over values from
// config files. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// MONGO_URI and PORT are the names used by existing deployments.
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "MONGO_URI"); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind server port: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.name", "tasklist")
	v.SetDefault("database.collection", "tasks")
	v.SetDefault("database.connect_timeout", 10*time.Second)
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// ALLOW-PANIC: registration only fails for an empty tag or nil func
	if err := validate.RegisterValidation("dburl", func(fl validator.FieldLevel) bool {
		return backendForURL(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return validate
}
