package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port                  int    `env:"PORT" envDefault:"8080"`
	Environment           string `env:"APP_ENV" envDefault:"development"`
	DatabaseDriver        string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL           string `env:"DATABASE_URL,required"`
	RedisURL              string `env:"REDIS_URL"`
	IdentitySecret        string `env:"IDENTITY_SECRET"`
	EncryptionKey         string `env:"ENCRYPTION_KEY"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
	DefaultLanguage       string `env:"DEFAULT_LANGUAGE" envDefault:"it"`
	CreateRateLimitPerMin int    `env:"CREATE_RATE_LIMIT_PER_MIN" envDefault:"10"`
	JoinRateLimitPerMin   int    `env:"JOIN_RATE_LIMIT_PER_MIN" envDefault:"30"`
	RevealRateLimitPerMin int    `env:"REVEAL_RATE_LIMIT_PER_MIN" envDefault:"10"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) Validate(isProduction bool) error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}

	if c.EncryptionKey != "" {
		key, err := hex.DecodeString(c.EncryptionKey)
		if err != nil || len(key) != 32 {
			return fmt.Errorf("ENCRYPTION_KEY must be 64 hex characters (generate with: openssl rand -hex 32)")
		}
	}

	if isProduction {
		if err := validateSecret("IDENTITY_SECRET", c.IdentitySecret); err != nil {
			return err
		}

		if c.RedisURL == "" {
			log.Warn().Msg("REDIS_URL is empty in production: rate limits and live lobby events are per-instance")
		} else if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if c.EncryptionKey == "" {
			log.Warn().Msg("ENCRYPTION_KEY is empty in production: envelopes will not be encrypted at rest")
		}
		if c.DatabaseDriver == DriverSQLite {
			log.Warn().Msg("DATABASE_DRIVER is sqlite in production: only a single instance can be run")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

// RateWindow is the window all per-IP action limits are counted over.
func (c *Config) RateWindow() time.Duration {
	return time.Minute
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	return &cfg, nil
}
