// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the full service configuration. Values come from the
// environment (optionally seeded by a .env file) with viper defaults.
type Config struct {
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	DatabaseURL string `mapstructure:"database_url" validate:"required"`

	// Gemini is optional: without a key the analyze endpoint reports
	// itself unavailable instead of failing at startup.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	JWTSecret          string `mapstructure:"jwt_secret" validate:"required"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours" validate:"min=1"`

	// Redis is optional: when unset, scrape status lives in process memory.
	RedisURL string `mapstructure:"redis_url"`

	// ScrapeSchedule is an optional cron expression for unattended scrape
	// runs. Empty disables the scheduler.
	ScrapeSchedule string `mapstructure:"scrape_schedule"`

	Headless bool `mapstructure:"headless"`
	MinJobs  int  `mapstructure:"min_jobs" validate:"min=1"`
	MaxJobs  int  `mapstructure:"max_jobs" validate:"min=1"`

	Debug   bool `mapstructure:"debug"`
	JSONLog bool `mapstructure:"json_log"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8000)
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("jwt_expiration_hours", 24)
	v.SetDefault("headless", true)
	v.SetDefault("min_jobs", 15)
	v.SetDefault("max_jobs", 15)
	v.SetDefault("debug", false)
	v.SetDefault("json_log", false)

	// Bind well-known environment variables. AutomaticEnv alone does not
	// register keys for Unmarshal, so each one is bound explicitly.
	for key, env := range map[string]string{
		"port":                 "PORT",
		"database_url":         "DATABASE_URL",
		"gemini_api_key":       "GEMINI_API_KEY",
		"gemini_model":         "GEMINI_MODEL",
		"jwt_secret":           "JWT_SECRET",
		"jwt_expiration_hours": "JWT_EXPIRATION_HOURS",
		"redis_url":            "REDIS_URL",
		"scrape_schedule":      "SCRAPE_SCHEDULE",
		"headless":             "HEADLESS",
		"min_jobs":             "SCRAPE_MIN_JOBS",
		"max_jobs":             "SCRAPE_MAX_JOBS",
		"debug":                "DEBUG",
		"json_log":             "JSON_LOG",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.MaxJobs < c.MinJobs {
		return fmt.Errorf("invalid configuration: SCRAPE_MAX_JOBS (%d) must be >= SCRAPE_MIN_JOBS (%d)", c.MaxJobs, c.MinJobs)
	}
	return nil
}
