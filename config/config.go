package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Defaults used when the environment does not override them.
const (
	DefaultAPIURL      = "https://api.bfflix.app/v1"
	DefaultHTTPTimeout = 20 * time.Second
)

// Config holds runtime configuration for the CLI and the API client.
type Config struct {
	APIURL       string
	DatabasePath string
	HTTPTimeout  time.Duration
}

// Load reads configuration from a .env file (if present) and the process
// environment. Recognized variables: BFFLIX_API_URL, BFFLIX_DB_PATH,
// BFFLIX_HTTP_TIMEOUT (seconds).
func Load() (*Config, error) {
	// A missing .env file is not an error; env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:       DefaultAPIURL,
		DatabasePath: filepath.Join(os.Getenv("HOME"), ".bfflix/bfflix.db"),
		HTTPTimeout:  DefaultHTTPTimeout,
	}

	if v := os.Getenv("BFFLIX_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("BFFLIX_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("BFFLIX_HTTP_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid BFFLIX_HTTP_TIMEOUT: %q", v)
		}
		cfg.HTTPTimeout = time.Duration(secs) * time.Second
	}

	log.Debug().Str("api_url", cfg.APIURL).Str("db_path", cfg.DatabasePath).Msg("Configuration loaded")
	return cfg, nil
}
