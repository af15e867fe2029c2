package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken        string        `env:"TELEGRAM_TOKEN" validate:"required"`
	DatabaseDriver       string        `env:"DATABASE_DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	DatabaseURL          string        `env:"DATABASE_URL" envDefault:"data/birthdays.db" validate:"required"`
	CheckIntervalMinutes int           `env:"CHECK_INTERVAL_MINUTES" envDefault:"30" validate:"gte=1"`
	ListPageSize         int           `env:"LIST_PAGE_SIZE" envDefault:"15" validate:"gte=1,lte=50"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile              string        `env:"LOG_FILE"`
	Environment          string        `env:"ENVIRONMENT" envDefault:"development"`
	MetricsAddr          string        `env:"METRICS_ADDR" validate:"omitempty,hostname_port"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// CheckInterval is the time between two birthday reconciliation runs.
func (c *AppConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMinutes) * time.Minute
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	if cfg.DatabaseDriver == "sqlite3" {
		cfg.DatabaseDriver = "sqlite"
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
