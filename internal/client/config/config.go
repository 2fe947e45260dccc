package config

import (
	"fmt"

	"github.com/dmitrijs2005/supportportal/internal/common"
)

// Config holds runtime settings for the support-portal CLI.
type Config struct {
	// APIURL is the base URL of the backend HTTP API.
	APIURL string `env:"API_URL" json:"api_url"`
	// StorePath is the SQLite file holding the local session.
	StorePath string `env:"STORE_PATH" json:"store_path"`
	// LogLevel is a slog level name, LogFormat is "text" or "json".
	LogLevel  string `env:"LOG_LEVEL" json:"log_level"`
	LogFormat string `env:"LOG_FORMAT" json:"log_format"`
	// TokenHeader names the login response header carrying the session token.
	TokenHeader string `env:"TOKEN_HEADER" json:"token_header"`
}

// Defaults returns the configuration used when no source overrides a value.
func Defaults() Config {
	return Config{
		APIURL:      "http://localhost:8081",
		StorePath:   "portal.db",
		LogLevel:    "warn",
		LogFormat:   "text",
		TokenHeader: common.JWTTokenHeader,
	}
}

type source func(cfg *Config, args []string) error

// Load builds a Config from defaults, the environment (and .env), a JSON
// file named by -c/-config and finally flags. Each source overrides the
// previous ones for the values it sets.
func Load(args []string) (*Config, error) {
	cfg := Defaults()
	for _, step := range []struct {
		name string
		fn   source
	}{
		{"env", fromEnv},
		{"json", fromJSON},
		{"flags", fromFlags},
	} {
		if err := step.fn(&cfg, args); err != nil {
			return nil, fmt.Errorf("config %s: %w", step.name, err)
		}
	}
	return &cfg, nil
}
