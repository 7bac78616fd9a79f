package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcal/internal/flagx"
	"github.com/dmitrijs2005/gophcal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a config file, JSON or YAML. Absent
// keys leave the current value alone.
type FileConfig struct {
	DatabaseDriver        *string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN           *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             *string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	LogFormat             *string         `json:"log_format" yaml:"log_format"`
	LogLevel              *string         `json:"log_level" yaml:"log_level"`
	MetricsAddr           *string         `json:"metrics_addr" yaml:"metrics_addr"`
	OutputFormat          *string         `json:"output_format" yaml:"output_format"`
	ExportDir             *string         `json:"export_dir" yaml:"export_dir"`
	Seed                  *bool           `json:"seed" yaml:"seed"`
}

// parseFile overlays the file named by -c/-config. Files ending in .yaml or
// .yml are YAML, anything else is JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set(&cfg.DatabaseDriver, fc.DatabaseDriver)
	set(&cfg.DatabaseDSN, fc.DatabaseDSN)
	set(&cfg.SecretKey, fc.SecretKey)
	set(&cfg.BcryptCost, fc.BcryptCost)
	set(&cfg.LogFormat, fc.LogFormat)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.MetricsAddr, fc.MetricsAddr)
	set(&cfg.OutputFormat, fc.OutputFormat)
	set(&cfg.ExportDir, fc.ExportDir)
	set(&cfg.Seed, fc.Seed)
	if fc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = fc.TokenValidityDuration.Duration
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
