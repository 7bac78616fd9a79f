package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/flagx"
)

// parseFlags overlays command-line flags.
//
// Supported flags (short forms):
//
//	-D string   database driver (sqlite, postgres)
//	-d string   database DSN
//	-s string   token HMAC secret key
//	-t int      login token validity, minutes
//	-k int      bcrypt cost
//	-f string   log format (json, text)
//	-l string   log level
//	-m string   metrics listen address
//	-o string   record output format (yaml, json)
//	-x string   iCalendar export directory
//	-seed       load demo data into an empty store
//
// Only these flags are looked at; -c/-config belongs to parseFile.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args,
		[]string{"-D", "-d", "-s", "-t", "-k", "-f", "-l", "-m", "-o", "-x"},
		"-seed")

	fs := flag.NewFlagSet("gophcal", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "D", cfg.DatabaseDriver, "database driver (sqlite, postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "login token validity (in minutes)")
	fs.IntVar(&cfg.BcryptCost, "k", cfg.BcryptCost, "bcrypt cost")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (json, text)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.OutputFormat, "o", cfg.OutputFormat, "record output format (yaml, json)")
	fs.StringVar(&cfg.ExportDir, "x", cfg.ExportDir, "iCalendar export directory")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "load demo data into an empty store")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
	return nil
}
