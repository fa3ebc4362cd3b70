package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/fintrack/fintrack/internal/auth/http"
	"github.com/fintrack/fintrack/internal/auth/metrics"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/internal/auth/store/drivers/postgres"
	"github.com/fintrack/fintrack/internal/auth/store/drivers/sqlite"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/fintrack/fintrack/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// pooledStore is a driver store that also exposes its connection pool.
type pooledStore interface {
	store.Store
	DB() *sql.DB
}

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      pooledStore
	tokens  *jwtx.TokenService
	hasher  *cryptox.PasswordHasher
	metrics *metrics.Metrics

	authService    *service.AuthService
	authenticator  *service.Authenticator
	accountService *service.AccountService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fintrack",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initMetrics(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("fintrack starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DatabaseDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down fintrack...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("fintrack stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  pooledStore
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqliteDSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func sqliteDSN(file string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
}

// initCrypto loads the pepper and the signing key.
func (app *Application) initCrypto() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	key, err := LoadSigningKey(app.cfg, app.logger)
	if err != nil {
		return err
	}

	app.tokens, err = jwtx.NewTokenService(jwtx.Options{
		Secret: key,
		TTL:    app.cfg.TokenTTL,
		Issuer: app.cfg.Issuer,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.logger.Info("token service ready", "issuer", app.cfg.Issuer, "ttl", app.cfg.TokenTTL)
	return nil
}

func (app *Application) initMetrics() error {
	reg := prometheus.NewRegistry()

	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if err := m.RegisterDB(reg, app.db.DB(), app.cfg.DatabaseDriver); err != nil {
		return fmt.Errorf("failed to register db metrics: %w", err)
	}

	app.metrics = m
	return nil
}

// initServices wires the auth core and account services.
func (app *Application) initServices() error {
	// Burn a hash for unknown identifiers so they cost as much as a wrong password
	dummy, err := app.hasher.Hash("fintrack-dummy-password")
	if err != nil {
		return fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	resolver := &service.PrincipalResolver{
		Credentials: store.NewCredentialAdapter(app.db, app.hasher),
	}

	app.authService = &service.AuthService{
		Resolver:  resolver,
		Tokens:    app.tokens,
		TTL:       app.tokens.TTL(),
		DummyHash: dummy,
	}
	app.authenticator = &service.Authenticator{
		Tokens:   app.tokens,
		Resolver: resolver,
	}
	app.accountService = &service.AccountService{
		Store:  app.db,
		Hasher: app.hasher,
	}
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.RouterConfig{
		BuildVersion: BuildVersion,
		Logger:       app.logger,
		Store:        app.db,
		Tokens:       app.tokens,
		Metrics:      app.metrics,
		RateLimits:   app.cfg.RateLimits,
		CORSOrigins:  app.cfg.CORSOrigins,
		TrustProxy:   app.cfg.TrustProxy,
	})

	router.AuthService = app.authService
	router.Authenticator = app.authenticator
	router.AccountService = app.accountService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
