package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/filex"
	"github.com/dmitrijs2005/gophcal/internal/migrations"
	"github.com/dmitrijs2005/gophcal/internal/repositories/calendars"
	"github.com/dmitrijs2005/gophcal/internal/repositories/events"
	"github.com/dmitrijs2005/gophcal/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends database/sql repositories speaking one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Calendars returns a calendars.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Calendars(db dbx.DBTX) calendars.Repository {
	return calendars.NewSQLRepository(db, m.dialect)
}

// Events returns an events.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db, m.dialect)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}

// Open opens and pings a pool for dialect. SQLite pools are limited to one
// connection so that writers serialize instead of failing with SQLITE_BUSY,
// and the directory of a file database is created on demand.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	if dialect == dbx.DialectSQLite {
		if dir := sqliteDir(dsn); dir != "" {
			if _, err := filex.EnsureDir(dir); err != nil {
				return nil, fmt.Errorf("db init error: %w", err)
			}
		}
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

// sqliteDir returns the directory holding the database file of dsn, or ""
// for in-memory databases and files in the working directory.
func sqliteDir(dsn string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}
