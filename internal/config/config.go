// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package config handles application configuration for Milkbar.
//
// Configuration is loaded in layers with clear precedence:
// environment variables > YAML config file > built-in defaults.
// See LoadWithKoanf for the loading pipeline.
package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the HTTP listen port. Default: 3000
	Port int `koanf:"port"`

	// Timeout is the read/write timeout for HTTP requests.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production". Controls startup
	// checks such as refusing to run without staff PINs in production.
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds the embedded Badger store settings.
type DatabaseConfig struct {
	// Path is the directory for the Badger database files.
	Path string `koanf:"path"`

	// InMemory runs Badger without disk persistence. Intended for tests.
	InMemory bool `koanf:"in_memory"`
}

// AuthConfig holds staff authentication and password hashing settings.
type AuthConfig struct {
	// AdminPIN unlocks the admin panel and guards /api/admin routes.
	// An empty PIN disables admin login with an explicit error.
	AdminPIN string `koanf:"admin_pin"`

	// ClientsPIN unlocks the in-restaurant client terminal.
	ClientsPIN string `koanf:"clients_pin"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Default: 10
	BcryptCost int `koanf:"bcrypt_cost"`
}

// SecurityConfig holds HTTP-surface security settings.
type SecurityConfig struct {
	// CORSOrigins lists allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitDisabled turns off per-endpoint rate limiting.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate checks the configuration for invalid values.
// PINs may be empty: the matching endpoints then refuse logins with an
// explicit "not configured" error instead of failing startup, except in
// production where a missing admin PIN is a hard error.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %v", c.Server.Timeout)
	}

	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("invalid environment: %q (want development or production)", c.Server.Environment)
	}

	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("database path is required unless in_memory is set")
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.Auth.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.IsProduction() && c.Auth.AdminPIN == "" {
		return fmt.Errorf("auth.admin_pin is required in production")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q (want json or console)", c.Logging.Format)
	}

	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
