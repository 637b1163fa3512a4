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

	httpapi "github.com/hypolab/workspace/internal/workspace/http"
	"github.com/hypolab/workspace/internal/workspace/notify"
	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/internal/workspace/store"
	"github.com/hypolab/workspace/internal/workspace/store/drivers/postgres"
	"github.com/hypolab/workspace/internal/workspace/store/drivers/sqlite"
	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application is the workspace service with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	redis    *redis.Client
	keys     *jwtx.KeySet
	verifier jwtx.Verifier
	engine   *rbac.Engine
	notifier notify.Notifier

	userService       *service.UserService
	workspaceService  *service.WorkspaceService
	invitationService *service.InvitationService
	keyRefresher      *KeyRefresher // nil when keys come from a file

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency connected. On error
// anything already opened is closed.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "workspace-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initPermissions(); err != nil {
		return nil, err
	}

	var err error
	app.keys, app.verifier, err = loadKeys(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity provider keys: %w", err)
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initNotifier(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if app.keyRefresher != nil {
		app.keyRefresher.Start()
	}

	app.logger.Info("workspace service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("db_driver", app.cfg.DatabaseDriver),
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
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes every connection.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down workspace service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("err", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("err", err))
		}
	}

	if app.keyRefresher != nil {
		app.keyRefresher.Stop()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", slog.Any("err", err))
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("err", err))
		return err
	}

	app.logger.Info("workspace service stopped")
	return nil
}

// Handler exposes the router, for tests that drive the fully wired service
// without a listener.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initPermissions() error {
	if app.cfg.PermissionsFile == "" {
		app.engine = rbac.NewEngine(rbac.DefaultTable())
		return nil
	}

	table, err := rbac.LoadTableFile(app.cfg.PermissionsFile)
	if err != nil {
		return fmt.Errorf("failed to load permission table: %w", err)
	}
	app.engine = rbac.NewEngine(table)
	app.logger.Info("permission table loaded", slog.String("path", app.cfg.PermissionsFile))
	return nil
}

// initDatabase opens the configured store and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseDSN)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseDSN)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initNotifier connects the email queue, or falls back to logging notices
// when no Redis is configured.
func (app *Application) initNotifier(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.notifier = notify.LogNotifier{}
		app.logger.Warn("no redis configured, invitation emails are logged only")
		return nil
	}

	client, err := notify.Dial(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client
	queue := notify.NewRedisQueue(client, app.cfg.NotifyQueue)
	app.notifier = queue
	app.logger.Info("invitation emails queued", slog.String("queue", queue.Key()))
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
	app.workspaceService = &service.WorkspaceService{
		Store:  app.db,
		Engine: app.engine,
	}
	app.invitationService = &service.InvitationService{
		Store:    app.db,
		Engine:   app.engine,
		Notifier: app.notifier,
		Attacher: service.StoreAttacher{},
		BaseURL:  app.cfg.BaseURL,
		Validity: app.cfg.InvitationValidity,
	}

	if app.cfg.JWKSURL != "" && app.cfg.JWKSFile == "" {
		app.keyRefresher = NewKeyRefresher(app.keys, app.cfg.JWKSURL, app.logger, app.cfg.JWKSRefresh)
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		app.engine,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Limits = app.cfg.Limits
	router.UserService = app.userService
	router.WorkspaceService = app.workspaceService
	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
