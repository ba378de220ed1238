package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the stackchart CLI.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty" validate:"oneof=pretty json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	DataPath   string   `envconfig:"STACKCHART_DATA"`
	Categories []string `envconfig:"STACKCHART_CATEGORIES"`
	Metrics    bool     `envconfig:"STACKCHART_METRICS" default:"false"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("app: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("app: invalid config: %w", err)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// HasCategories reports whether a default category filter is configured.
func (c *Config) HasCategories() bool {
	return c != nil && len(c.Categories) > 0
}
