// Package app wires configuration, storage, metrics and the console into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/config"
	"github.com/dmitrijs2005/gophcal/internal/console"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/logging"
	"github.com/dmitrijs2005/gophcal/internal/metrics"
	"github.com/dmitrijs2005/gophcal/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophcal/internal/seed"
	"github.com/dmitrijs2005/gophcal/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	store    *services.Store
	registry *prometheus.Registry
	in       io.Reader
	out      io.Writer
}

// NewApp opens and migrates the database, builds the store and seeds it when
// configured. Logs go to logOut, the console talks over in and out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	app, err := newApp(ctx, c, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.in, app.out = in, out
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, dialect dbx.Dialect) (*App, error) {
	m := repomanager.NewSQLRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	obs, err := metrics.NewStore(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	store := services.NewStore(db, m, c, services.WithLogger(logger), services.WithObserver(obs))

	if c.Seed {
		seeded, err := seed.Apply(ctx, store)
		if err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
		if seeded {
			logger.Info(ctx, "demo data loaded")
		}
	}

	return &App{config: c, logger: logger, db: db, store: store, registry: reg}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// metricsHandler serves the application registry.
func (app *App) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}))
	return mux
}

func (app *App) startMetricsServer(ctx context.Context, wg *sync.WaitGroup) {
	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           app.metricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.logger.Info(ctx, "metrics listener started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "metrics listener failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// Run serves the console until it exits or a termination signal arrives,
// then stops the metrics listener and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)
	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	if app.config.MetricsAddr != "" {
		app.startMetricsServer(ctx, &wg)
	}

	c := console.New(app.store, app.config, app.logger, app.in, app.out)
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		// The console may be blocked reading input; it is abandoned.
	}

	cancelFunc()
	wg.Wait()

	if cerr := app.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	app.logger.Info(context.Background(), "Stopped")
	return err
}
