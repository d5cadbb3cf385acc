// Package server wires configuration, storage, services and the HTTP API
// together and runs the journal service until it receives a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/dmitrijs2005/dailyjournal/internal/server/config"
	"github.com/dmitrijs2005/dailyjournal/internal/server/httpapi"
	"github.com/dmitrijs2005/dailyjournal/internal/server/metrics"
	"github.com/dmitrijs2005/dailyjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dailyjournal/internal/server/services"
	"github.com/dmitrijs2005/dailyjournal/internal/timex"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	repoManager  repomanager.RepositoryManager
	userService  *services.UserService
	entryService *services.EntryService
	server       runner
}

type runner interface {
	Run(ctx context.Context) error
}

// openDB is replaced in tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open(repomanager.DriverName, dsn)
}

// NewApp validates the configuration and builds every component. It does not
// touch the database; that happens in Run.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout)
}

func newApp(c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(context.Background(), "secret key not configured, generated a random one; tokens will not survive a restart")
	}

	zone, err := timex.LoadZone(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	us, err := services.NewUserService(db, rm, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	es := services.NewEntryService(db, rm, zone)

	m := metrics.New()
	router := httpapi.NewRouter(httpapi.Deps{
		Users:        us,
		Entries:      es,
		DB:           db,
		Zone:         zone,
		Logger:       logger,
		Metrics:      m,
		LoginLimiter: httpapi.NewRateLimiter(c.LoginRateLimit, c.LoginRateBurst, logger, m),
		CORSOrigins:  c.CORSAllowedOrigins,
	})

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		repoManager:  rm,
		userService:  us,
		entryService: es,
		server:       httpapi.NewHTTPServer(c.EndpointAddrHTTP, router, logger, c.ShutdownTimeout),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// prepare checks the database, applies migrations and seeds the default user.
func (app *App) prepare(ctx context.Context) error {
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	if err := app.repoManager.RunMigrations(ctx, app.db); err != nil {
		return err
	}

	if _, err := app.userService.EnsureDefaultUser(ctx); err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}
	return nil
}

// Run blocks until ctx is cancelled or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "zone", app.config.TimeZone)

	app.initSignalHandler(ctx, cancelFunc)

	if err := app.prepare(ctx); err != nil {
		app.logger.Error(ctx, "startup failed", "error", err)
		return err
	}

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")

	return runErr
}
