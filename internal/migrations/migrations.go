// Package migrations embeds the goose SQL migrations of the store, one
// directory per dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Up applies every pending migration of dialect d to db.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	var (
		dir     string
		dialect goose.Dialect
	)
	switch d {
	case dbx.DialectSQLite:
		dir, dialect = "sqlite", goose.DialectSQLite3
	case dbx.DialectPostgres:
		dir, dialect = "postgres", goose.DialectPostgres
	default:
		return fmt.Errorf("no migrations for dialect %q", d)
	}

	fsys, err := fs.Sub(Migrations, dir)
	if err != nil {
		return err
	}

	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
