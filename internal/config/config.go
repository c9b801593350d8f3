package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prefix is prepended to every environment variable, e.g. REVESSHOP_API_URL.
const Prefix = "REVESSHOP"

// LegacyAPIURLVar is the variable the web storefront used for the API
// endpoint. It is read when REVESSHOP_API_URL is not set.
const LegacyAPIURLVar = "NEXT_PUBLIC_API_URL"

// Config holds the client settings, parsed from REVESSHOP_ variables.
type Config struct {
	// APIURL is the storefront API base, e.g. https://api.revesshop.com/api
	APIURL string `envconfig:"API_URL" default:""`

	// SessionFile overrides where the session token is persisted.
	SessionFile string `envconfig:"SESSION_FILE" default:""`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`

	// RateLimit caps requests per second; 0 disables pacing.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"0"`
}

// Load reads an optional .env file from the working directory (or the files
// given), then the environment. Variables already set in the environment win
// over .env entries. An empty API URL is not an error here; the client warns
// about it when it is constructed.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv(LegacyAPIURLVar)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("session_file", cfg.SessionFile).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("debug", cfg.Debug).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must be >= 0, got %v", c.RateLimit)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured zerolog level.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
