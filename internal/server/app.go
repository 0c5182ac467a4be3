// Package server wires the account service together: configuration,
// storage, the mutation service with its hooks, and the HTTP and gRPC
// health listeners. It handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/ratelimiter"
	"github.com/dmitrijs2005/gophaccounts/internal/server/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/audit"
	"github.com/dmitrijs2005/gophaccounts/internal/server/config"
	"github.com/dmitrijs2005/gophaccounts/internal/server/httpapi"
	"github.com/dmitrijs2005/gophaccounts/internal/server/metrics"
	"github.com/dmitrijs2005/gophaccounts/internal/server/principal"
	repo "github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophaccounts/internal/server/seed"

	gs "github.com/dmitrijs2005/gophaccounts/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	store   repo.Repository
	service *accounts.Service
	metrics *metrics.Metrics
	handler http.Handler
	health  *gs.HealthServer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	ctx := context.Background()

	app := &App{config: c, logger: logger, metrics: metrics.New()}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	hooks, err := app.initHooks(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	opts := []accounts.Option{
		accounts.WithLogger(logger),
		accounts.WithPasswordValidator(accounts.PasswordPolicy{MinLength: c.PasswordMinLength}),
		accounts.WithHookErrorObserver(app.metrics.HookFailed),
	}
	for _, h := range hooks {
		opts = append(opts, accounts.WithHook(h))
	}
	app.service = accounts.NewService(app.store, opts...)

	app.handler = httpapi.NewRouter(httpapi.Options{
		Prefix:          c.RoutePrefix,
		RequireVerified: c.RequireVerification,
		Service:         app.service,
		Resolver:        principal.NewResolver(app.store, c.SecretKey),
		Logger:          logger,
		Metrics:         app.metrics,
		Limiter:         ratelimiter.New(c.RateLimitRPS, c.RateLimitBurst, 10*time.Minute),
	})

	var probe gs.Probe
	if app.db != nil {
		probe = app.db.PingContext
	}
	app.health = gs.NewHealthServer(c.EndpointAddrGRPC, logger, probe, 10*time.Second)

	return app, nil
}

// initStore opens Postgres and runs migrations when a DSN is configured,
// otherwise falls back to the in-memory store. The seed file is applied
// in both cases.
func (app *App) initStore(ctx context.Context) error {
	var f *seed.File
	if app.config.SeedFile != "" {
		var err error
		if f, err = seed.ReadFile(app.config.SeedFile); err != nil {
			return err
		}
	}

	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "no database DSN configured, using in-memory store")
		store := repo.NewMemoryRepository()
		app.store = store
		if f != nil {
			n, err := seed.Apply(ctx, store, f, cryptox.HashPassword)
			if err != nil {
				return fmt.Errorf("seed error: %w", err)
			}
			app.logger.Info(ctx, "seed applied", "created", n)
		}
		return nil
	}

	db, err := repomanager.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close()
		return fmt.Errorf("migration error: %w", err)
	}
	app.store = rm.Accounts(db)

	if f != nil {
		n, err := seed.ApplyTx(ctx, db, rm.Accounts, f, cryptox.HashPassword)
		if err != nil {
			app.close()
			return fmt.Errorf("seed error: %w", err)
		}
		app.logger.Info(ctx, "seed applied", "created", n)
	}
	return nil
}

func (app *App) initHooks(ctx context.Context) ([]accounts.Hook, error) {
	hooks := []accounts.Hook{audit.LogHook(app.logger)}

	if app.config.S3AuditBucket == "" {
		return hooks, nil
	}

	client, err := audit.NewS3Client(ctx, audit.S3Config{
		Bucket:       app.config.S3AuditBucket,
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
		AccessKey:    app.config.S3RootUser,
		SecretKey:    app.config.S3RootPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("audit init error: %w", err)
	}
	app.logger.Info(ctx, "S3 audit enabled", "bucket", app.config.S3AuditBucket)
	return append(hooks, audit.NewS3Sink(client, app.config.S3AuditBucket).Hook()), nil
}

// Handler is the full HTTP handler chain.
func (app *App) Handler() http.Handler { return app.handler }

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	lis, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}
	app.serveHTTP(ctx, cancelFunc, lis)
}

func (app *App) serveHTTP(ctx context.Context, cancelFunc context.CancelFunc, lis net.Listener) {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "server shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err.Error())
		}
		app.db = nil
	}
}
