// Package config handles configuration for gophcal: defaults, then a .env
// file and GOPHCAL_* environment variables, then a JSON or YAML config file,
// then command-line flags. Each layer overrides the previous one.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/dbx"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDriver: "sqlite" (default) or "postgres".
//   - DatabaseDSN: driver specific DSN.
//   - SecretKey: HMAC secret for signing login tokens (HS256).
//   - TokenValidityDuration: lifetime of a login token.
//   - BcryptCost: work factor of password hashes; 0 selects bcrypt's default.
//   - LogFormat / LogLevel: "json" or "text"; debug, info, warn or error.
//   - MetricsAddr: when set, Prometheus metrics are served there.
//   - OutputFormat: record output of the console, "yaml" or "json".
//   - ExportDir: where iCalendar exports are written.
//   - Seed: load demo data into an empty store at startup.
type Config struct {
	DatabaseDriver        string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	LogFormat             string
	LogLevel              string
	MetricsAddr           string
	OutputFormat          string
	ExportDir             string
	Seed                  bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:data/gophcal.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 12
	c.LogFormat = "text"
	c.LogLevel = "warn"
	c.MetricsAddr = ""
	c.OutputFormat = "yaml"
	c.ExportDir = "exports"
	c.Seed = false
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	if _, err := dbx.ParseDialect(c.DatabaseDriver); err != nil {
		return err
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	switch c.OutputFormat {
	case "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	return nil
}

// Load builds a Config from defaults and every overlay, reading flags from
// args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
