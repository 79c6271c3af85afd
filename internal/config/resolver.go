package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VNCARD_"

// apiKeys are read without the prefix, matching the names Google tooling uses.
type apiKeys struct {
	Gemini string `env:"GEMINI_API_KEY"`
	Google string `env:"GOOGLE_API_KEY"`
}

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays VNCARD_* variables onto c. Unset variables leave the
// current value alone. The Gemini key also falls back to GEMINI_API_KEY and
// then GOOGLE_API_KEY.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if c.Sources.GeminiAPIKey == "" {
		var keys apiKeys
		if err := env.Parse(&keys); err != nil {
			return fmt.Errorf("failed to parse environment: %w", err)
		}
		c.Sources.GeminiAPIKey = keys.Gemini
		if c.Sources.GeminiAPIKey == "" {
			c.Sources.GeminiAPIKey = keys.Google
		}
	}
	return nil
}

// Resolve builds the effective configuration with precedence
// env > file > defaults. CLI flags are applied by the caller afterwards.
// When required is false a missing file is not an error.
func Resolve(path string, required bool) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	var (
		c   *Config
		err error
	)
	if required {
		c, err = Load(path)
	} else {
		c, err = LoadOptional(path)
	}
	if err != nil {
		return nil, err
	}

	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}
