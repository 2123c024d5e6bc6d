// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"erp_backend/internal/platform/db"
)

// Config is the full server configuration.
type Config struct {
	AppEnv       string        `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production test"`
	Port         string        `env:"PORT" envDefault:"5000" validate:"required,numeric"`
	CORSOrigin   string        `env:"CORS_ORIGIN" envDefault:"http://localhost:3000" validate:"required"`
	JWTSecret    string        `env:"JWT_SECRET" validate:"required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h" validate:"gt=0"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DB db.Config

	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	OnboardingStream string `env:"ONBOARDING_STREAM" envDefault:"client-onboarding" validate:"required"`
}

// IsProduction reports whether the server runs in a deployed environment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "staging"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads an optional .env file, parses the environment and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}
