package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration for the API server.
type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`

	// BcryptCost bounds the cost of password hashing per request.
	BcryptCost int `yaml:"bcrypt_cost"`

	// SessionTTL is how long a session row stays valid after login.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// StoreTimeout caps every store lookup/write made while serving a request.
	StoreTimeout time.Duration `yaml:"store_timeout"`

	// SecureCookies must be false for local dev over plain HTTP.
	SecureCookies bool `yaml:"secure_cookies"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// Load builds a Config from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables — in that order, later wins.
//
// Environment variables:
//   - PORT: listen port (default: 5050)
//   - DATABASE_URL: postgres DSN (required)
//   - BCRYPT_COST: bcrypt work factor (default: bcrypt.DefaultCost)
//   - SESSION_TTL: Go duration, e.g. "6h" (default: 6h)
//   - STORE_TIMEOUT: Go duration (default: 5s)
//   - SECURE_COOKIES: "true" to mark session cookies Secure
//   - ALLOWED_ORIGINS: comma-separated CORS allowlist
func Load() (Config, error) {
	cfg := Config{
		Port:         "5050",
		BcryptCost:   bcrypt.DefaultCost,
		SessionTTL:   6 * time.Hour,
		StoreTimeout: 5 * time.Second,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
		}
		cfg.StoreTimeout = timeout
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		cfg.SecureCookies = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.StoreTimeout <= 0 {
		return errors.New("store timeout must be positive")
	}
	return nil
}
