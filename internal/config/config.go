// Package config loads server configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Inactive-user rules understood by the activity classifier.
const (
	InactiveLastLogin = "last-login"
	InactiveLegacy    = "legacy"
)

// Config holds the server configuration.
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	LogLevel    string

	// Activity classifier
	ActiveWindow           time.Duration
	FrequentLoginThreshold int
	InactiveRule           string

	BcryptCost int

	// Login limiter
	LoginFailWindow time.Duration
	LoginMaxFails   int
	LoginBlockFor   time.Duration

	ShutdownTimeout time.Duration
	MigrateOnStart  bool
}

// Load reads .env (if present) and then the process environment.
// Malformed values are reported; missing ones fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	var p parser

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		}
	}

	cfg := &Config{
		HTTPAddr:               addr,
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		LogLevel:               str("LOG_LEVEL", "info"),
		ActiveWindow:           p.duration("ACTIVE_WINDOW", 240*time.Hour),
		FrequentLoginThreshold: p.integer("FREQUENT_LOGIN_THRESHOLD", 5),
		InactiveRule:           str("INACTIVE_RULE", InactiveLastLogin),
		BcryptCost:             p.integer("BCRYPT_COST", 10),
		LoginFailWindow:        p.duration("LOGIN_FAIL_WINDOW", 15*time.Minute),
		LoginMaxFails:          p.integer("LOGIN_MAX_FAILS", 5),
		LoginBlockFor:          p.duration("LOGIN_BLOCK_FOR", 15*time.Minute),
		ShutdownTimeout:        p.duration("SHUTDOWN_TIMEOUT", 5*time.Second),
		MigrateOnStart:         p.boolean("MIGRATE_ON_START", true),
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing or out-of-range settings.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.ActiveWindow <= 0 {
		errs = append(errs, errors.New("ACTIVE_WINDOW must be positive"))
	}
	if c.FrequentLoginThreshold < 1 {
		errs = append(errs, errors.New("FREQUENT_LOGIN_THRESHOLD must be at least 1"))
	}
	if c.InactiveRule != InactiveLastLogin && c.InactiveRule != InactiveLegacy {
		errs = append(errs, fmt.Errorf("INACTIVE_RULE must be %q or %q, got %q",
			InactiveLastLogin, InactiveLegacy, c.InactiveRule))
	}
	if c.LoginMaxFails < 1 {
		errs = append(errs, errors.New("LOGIN_MAX_FAILS must be at least 1"))
	}
	if c.LoginFailWindow <= 0 || c.LoginBlockFor <= 0 {
		errs = append(errs, errors.New("LOGIN_FAIL_WINDOW and LOGIN_BLOCK_FOR must be positive"))
	}
	return errors.Join(errs...)
}

func str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parser collects conversion errors so every bad key is reported at once.
type parser struct{ errs []error }

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return b
}
