package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/copilot/internal/copilot/http"
	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the copilot server with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	store      store.Store
	ids        *idx.Sequence
	keyManager *jwtx.KeyManager

	// Services
	accountService *service.AccountService
	clientService  *service.ClientService
	tokenService   *service.TokenService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "copilot",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		ids: idx.NewSequence(),
	}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		_ = app.store.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager
	app.logger.Info("ephemeral signing keys generated", "num_keys", keyManager.NumSigners())

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler. Tests drive it through
// httptest instead of a real listener.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("copilot starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.store.Driver(),
		"auth_required", app.cfg.AuthRequired,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.store.Close()
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down copilot...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("copilot stopped")
	return nil
}

// initStore opens the configured document store and moves the id sequence
// past every stored id.
func (app *Application) initStore(ctx context.Context) error {
	st, err := drivers.Open(ctx, app.cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", app.cfg.Store.Driver, err)
	}
	app.store = st

	if err := service.PrimeSequence(ctx, st, app.ids); err != nil {
		_ = st.Close()
		return fmt.Errorf("failed to read stored ids: %w", err)
	}

	app.logger.Info("document store ready", "driver", st.Driver(), "last_id", app.ids.Last())
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.accountService = &service.AccountService{Store: app.store, IDs: app.ids}
	app.clientService = &service.ClientService{Store: app.store, IDs: app.ids}
	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		TTL:        app.cfg.TokenTTL,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	cors := httpx.DefaultCORS
	cors.AllowedOrigins = app.cfg.AllowOrigins

	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.store,
		app.logger,
		httpapi.Options{
			AuthRequired: app.cfg.AuthRequired,
			Limits: httpapi.Limits{
				Auth:    app.cfg.AuthLimit,
				Records: app.cfg.RecordLimit,
				Public:  app.cfg.PublicLimit,
			},
			CORS: cors,
		},
	)

	router.AccountService = app.accountService
	router.ClientService = app.clientService
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
