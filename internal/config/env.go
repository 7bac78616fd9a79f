package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is read, when present, before the environment is consulted.
// Variables already set in the environment win over the file.
var envFile = ".env"

// parseEnv overlays GOPHCAL_* environment variables.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	str("GOPHCAL_DATABASE_DRIVER", &cfg.DatabaseDriver)
	str("GOPHCAL_DATABASE_DSN", &cfg.DatabaseDSN)
	str("GOPHCAL_SECRET_KEY", &cfg.SecretKey)
	str("GOPHCAL_LOG_FORMAT", &cfg.LogFormat)
	str("GOPHCAL_LOG_LEVEL", &cfg.LogLevel)
	str("GOPHCAL_METRICS_ADDR", &cfg.MetricsAddr)
	str("GOPHCAL_OUTPUT_FORMAT", &cfg.OutputFormat)
	str("GOPHCAL_EXPORT_DIR", &cfg.ExportDir)

	if v, ok := os.LookupEnv("GOPHCAL_TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GOPHCAL_TOKEN_VALIDITY: %w", err)
		}
		cfg.TokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("GOPHCAL_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOPHCAL_BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}
	if v, ok := os.LookupEnv("GOPHCAL_SEED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GOPHCAL_SEED: %w", err)
		}
		cfg.Seed = b
	}

	return nil
}
