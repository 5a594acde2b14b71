package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the movie collection service.
// Environment variables are automatically parsed from the FILMOTECA_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"3000"`

	// Store Configuration. Backend selects the document store implementation:
	// json (flat file, default), sqlite, or memory.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"json"`

	// DataPath is the document location: a .json file for the json backend,
	// a database file for sqlite, ignored by the memory backend.
	DataPath string `envconfig:"DATA_PATH" default:"data/data.json"`
}

// ResolveDefaults validates StoreBackend and derives the sqlite file path
// when DataPath still names the default JSON document.
func (c *Config) ResolveDefaults() error {
	switch c.StoreBackend {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported STORE_BACKEND: %s", c.StoreBackend)
	}

	if c.StoreBackend == "sqlite" && strings.HasSuffix(c.DataPath, ".json") {
		c.DataPath = strings.TrimSuffix(c.DataPath, ".json") + ".db"
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with FILMOTECA_
// Example: FILMOTECA_HTTP_PORT, FILMOTECA_STORE_BACKEND
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FILMOTECA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("store_backend", cfg.StoreBackend).
		Str("data_path", cfg.DataPath).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:  EnvTesting,
		HTTPPort:     3000,
		StoreBackend: "memory",
		DataPath:     "",
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
