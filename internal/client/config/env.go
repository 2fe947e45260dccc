package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name, e.g. PORTAL_API_URL.
const EnvPrefix = "PORTAL_"

// fromEnv reads PORTAL_* variables. A .env file in the working directory is
// loaded first without overriding variables that are already set.
func fromEnv(cfg *Config, _ []string) error {
	_ = godotenv.Load()
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}
