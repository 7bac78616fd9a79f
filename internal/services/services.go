// Package services is the entity store: every read and write of users,
// calendars and events goes through it. Writes are validated before they
// reach the database and run in a single transaction together with their
// reference checks and cascades, so a failed write leaves nothing behind.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/dmitrijs2005/gophcal/internal/config"
	"github.com/dmitrijs2005/gophcal/internal/logging"
	"github.com/dmitrijs2005/gophcal/internal/metrics"
	"github.com/dmitrijs2005/gophcal/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophcal/internal/repositories/users"
)

// Option customizes a service.
type Option func(*base)

// WithLogger sets the logger; the default discards.
func WithLogger(l logging.Logger) Option {
	return func(b *base) { b.logger = l }
}

// WithObserver sets the metrics observer; the default discards.
func WithObserver(o metrics.Observer) Option {
	return func(b *base) { b.observer = o }
}

// WithClock replaces time.Now for created-at stamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// base carries what every service needs.
type base struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	logger   logging.Logger
	observer metrics.Observer
	now      func() time.Time
}

func newBase(db *sql.DB, m repomanager.RepositoryManager, module string, opts []Option) base {
	b := base{
		db:       db,
		repos:    m,
		logger:   logging.Nop{},
		observer: metrics.Nop{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(&b)
	}
	b.logger = b.logger.With("module", module)
	return b
}

// observe reports a finished operation. Call it deferred with a pointer to
// the named error result.
func (b *base) observe(entity, op string, started time.Time, err *error) {
	b.observer.Observe(entity, op, started, *err)
}

func (b *base) stamp() time.Time {
	return b.now().UTC()
}

// userExists maps a missing user to a dangling reference on field.
func userExists(ctx context.Context, repo users.Repository, id int64, field string) error {
	if _, err := repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewFieldError(field, common.ErrorDanglingReference)
		}
		return err
	}
	return nil
}

// Store bundles the three entity services over one database.
type Store struct {
	Users     *UserService
	Calendars *CalendarService
	Events    *EventService
}

// NewStore wires the entity services. All of them share db, so the single
// SQLite connection serializes every transaction.
func NewStore(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, opts ...Option) *Store {
	return &Store{
		Users:     NewUserService(db, m, cfg, opts...),
		Calendars: NewCalendarService(db, m, opts...),
		Events:    NewEventService(db, m, opts...),
	}
}

// IsEmpty reports whether no user exists yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Users.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
