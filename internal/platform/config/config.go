// Copyright (c) 2026 Studydeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. In development a local
'.env' file is merged in first via 'joho/godotenv'; real environment variables
always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
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
)

// # Storage Drivers

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// # Configuration Schema

// Config holds all runtime configuration for the Studydeck API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageDriver selects the collection backend: "postgres" or "mongo".
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Document Database (MongoDB)
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"studydeck"`

	// Orphan ledger (Redis). Optional: without it incomplete cascades are only logged.
	RedisURL string `env:"REDIS_URL"`

	// SweepInterval runs the orphan sweeper inside the server. Zero disables it.
	SweepInterval time.Duration `env:"CLEANUP_SWEEP_INTERVAL" envDefault:"0s"`

	// External identity provider
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"auth.studydeck.app"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load merges an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] without touching the filesystem.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the requirements that depend on the selected driver.
func (c *Config) validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGO_URI is required when STORAGE_DRIVER=mongo")
		}
		if c.MongoDatabase == "" {
			return errors.New("config: MONGO_DATABASE must not be empty")
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.SweepInterval < 0 {
		return errors.New("config: CLEANUP_SWEEP_INTERVAL must not be negative")
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

// HasRedis reports whether the orphan ledger should be persisted.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}
