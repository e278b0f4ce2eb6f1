// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file,
when present, is loaded first with 'joho/godotenv'; real environment variables
always win over it.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// Email backends selectable with EMAIL_BACKEND.
const (
	EmailBackendSMTP    = "smtp"
	EmailBackendConsole = "console"
)

// # Configuration Schema

// Config holds all runtime configuration for the YaMDb API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), holds the redeemed confirmation-code ledger
	RedisURL string `env:"REDIS_URL,notEmpty"`

	// Access tokens (RS256)
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,notEmpty"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// Confirmation codes
	ConfirmationSecret  string        `env:"CONFIRMATION_SECRET,notEmpty"`
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" envDefault:"72h"`

	// Review score bounds (inclusive), within [constants.ScoreFloor, constants.ScoreCeiling]
	MinScore int `env:"MIN_SCORE" envDefault:"1"`
	MaxScore int `env:"MAX_SCORE" envDefault:"10"`

	// ReservedUsernames may never be registered; "me" addresses the self-profile.
	ReservedUsernames []string `env:"RESERVED_USERNAMES" envDefault:"me" envSeparator:","`

	// Outbound email
	EmailBackend string `env:"EMAIL_BACKEND" envDefault:"console"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"noreply@yamdb.local"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// TrustedProxies may set X-Forwarded-For / X-Real-IP; CIDRs or addresses.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment onto a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked 'notEmpty' is missing or blank.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.MinScore > c.MaxScore {
		return fmt.Errorf("config: MIN_SCORE (%d) is greater than MAX_SCORE (%d)", c.MinScore, c.MaxScore)
	}
	if c.MinScore < constants.ScoreFloor || c.MaxScore > constants.ScoreCeiling {
		return fmt.Errorf("config: score bounds [%d, %d] fall outside the stored range [%d, %d]",
			c.MinScore, c.MaxScore, constants.ScoreFloor, constants.ScoreCeiling)
	}

	switch c.EmailBackend {
	case EmailBackendConsole:
	case EmailBackendSMTP:
		if c.SMTPHost == "" {
			return errors.New("config: SMTP_HOST is required when EMAIL_BACKEND=smtp")
		}
	default:
		return fmt.Errorf("config: unknown EMAIL_BACKEND %q", c.EmailBackend)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits EXTRA_ORIGINS into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
