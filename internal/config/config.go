// Package config reads the quoteflow settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the quoteflow commands.
// Command line flags override the values read here.
type Config struct {
	Addr              string        `env:"QUOTEFLOW_ADDR" envDefault:":8080"`
	LogLevel          string        `env:"QUOTEFLOW_LOG_LEVEL" envDefault:"info"`
	LogJSON           bool          `env:"QUOTEFLOW_LOG_JSON" envDefault:"false"`
	StepsFile         string        `env:"QUOTEFLOW_STEPS_FILE"`
	SubmitDelay       time.Duration `env:"QUOTEFLOW_SUBMIT_DELAY" envDefault:"2s"`
	FormDelay         time.Duration `env:"QUOTEFLOW_FORM_DELAY" envDefault:"1500ms"`
	SubmitTimeout     time.Duration `env:"QUOTEFLOW_SUBMIT_TIMEOUT" envDefault:"30s"`
	NoticeTTL         time.Duration `env:"QUOTEFLOW_NOTICE_TTL" envDefault:"5s"`
	PageTTL           time.Duration `env:"QUOTEFLOW_PAGE_TTL" envDefault:"30m"`
	SweepInterval     time.Duration `env:"QUOTEFLOW_SWEEP_INTERVAL" envDefault:"1m"`
	MaxInputSize      int           `env:"QUOTEFLOW_MAX_INPUT_SIZE" envDefault:"4096"`
	RedisURL          string        `env:"QUOTEFLOW_REDIS_URL"`
	RedisPrefix       string        `env:"QUOTEFLOW_REDIS_PREFIX" envDefault:"quoteflow:"`
	RedisMaskPII      bool          `env:"QUOTEFLOW_REDIS_MASK_PII" envDefault:"false"`
	RedisDedupeWindow time.Duration `env:"QUOTEFLOW_REDIS_DEDUPE_WINDOW" envDefault:"10m"`
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	var problems []error
	if c.Addr == "" {
		problems = append(problems, errors.New("addr must not be empty"))
	}
	if c.SubmitDelay < 0 || c.FormDelay < 0 {
		problems = append(problems, errors.New("submit delays must not be negative"))
	}
	if c.SubmitTimeout < 0 {
		problems = append(problems, errors.New("submit timeout must not be negative"))
	}
	if c.NoticeTTL < 0 || c.PageTTL < 0 {
		problems = append(problems, errors.New("ttls must not be negative"))
	}
	if c.PageTTL > 0 && c.SweepInterval <= 0 {
		problems = append(problems, errors.New("sweep interval must be positive when pages expire"))
	}
	if c.RedisDedupeWindow < 0 {
		problems = append(problems, errors.New("redis dedupe window must not be negative"))
	}
	if c.MaxInputSize < 0 {
		problems = append(problems, errors.New("max input size must not be negative"))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(problems...))
	}
	return nil
}
