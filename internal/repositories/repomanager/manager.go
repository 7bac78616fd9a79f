// Package repomanager vends repository implementations bound to a DBTX and
// owns the database lifecycle: opening the pool and running migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/repositories/calendars"
	"github.com/dmitrijs2005/gophcal/internal/repositories/events"
	"github.com/dmitrijs2005/gophcal/internal/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Calendars(db dbx.DBTX) calendars.Repository
	Events(db dbx.DBTX) events.Repository
}
