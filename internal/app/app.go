package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nhle/geodev/internal/config"
	"github.com/nhle/geodev/internal/httpapi"
	"github.com/nhle/geodev/internal/project"
	"github.com/nhle/geodev/internal/store"
	"github.com/nhle/geodev/internal/task"
)

const shutdownTimeout = 5 * time.Second

// KeyringOpener opens the secret store holding the database URL. It is only
// called when the configuration names a keyring key and no URL.
type KeyringOpener func() (config.SecretGetter, error)

// App owns the process-wide resources: the store connection and the HTTP
// server built on it.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	conn   *store.Connection
	server *httpapi.Server
}

// New connects to storage, creates missing tables and wires the HTTP
// surface. An unusable configured database or a failed table creation is
// logged and tolerated; only an unopenable fallback store is fatal.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, openKeyring KeyringOpener) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	url := resolveDatabaseURL(cfg.Database, logger, openKeyring)
	if url == "" {
		logger.Info("no database url configured, using sqlite", "path", cfg.Database.SQLitePath)
	} else {
		logger.Info("connecting to configured database")
	}

	conn, err := store.Connect(ctx, store.Options{
		URL:          url,
		FallbackPath: cfg.Database.SQLitePath,
		PingTimeout:  cfg.Database.PingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to storage: %w", err)
	}
	if conn.Fallback != nil {
		logger.Warn("configured database unavailable, falling back to sqlite",
			"path", cfg.Database.SQLitePath, "err", conn.Fallback)
	}
	logger.Info("storage ready", "backend", string(conn.Backend()))

	if err := conn.Store.CreateTables(ctx); err != nil {
		logger.Warn("could not create database tables", "err", err)
	} else {
		logger.Info("database tables ready")
	}

	server := httpapi.NewServer(
		project.NewService(conn.Store),
		task.NewService(conn.Store),
		httpapi.Options{
			Logger:         logger,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			CORSOrigins:    cfg.HTTP.CORSOrigins,
			Store:          conn.Store,
			Backend:        string(conn.Backend()),
		},
	)

	return &App{cfg: cfg, logger: logger, conn: conn, server: server}, nil
}

func resolveDatabaseURL(cfg config.DatabaseConfig, logger *slog.Logger, openKeyring KeyringOpener) string {
	if cfg.URL != "" || cfg.KeyringKey == "" {
		return cfg.URL
	}

	var secrets config.SecretGetter
	if openKeyring != nil {
		ring, err := openKeyring()
		if err != nil {
			logger.Warn("could not open keyring", "err", err)
		} else {
			secrets = ring
		}
	}

	url, err := cfg.ResolveURL(secrets)
	if err != nil {
		logger.Warn("could not read database url from keyring", "key", cfg.KeyringKey, "err", err)
		return ""
	}
	return url
}

// Handler returns the HTTP handler serving the API.
func (a *App) Handler() http.Handler {
	return a.server
}

// Backend reports which storage engine is serving requests.
func (a *App) Backend() store.Backend {
	return a.conn.Backend()
}

// Serve accepts connections on l until ctx is cancelled, then waits for
// in-flight requests to finish.
func (a *App) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           a.server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", l.Addr().String())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (a *App) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", a.cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.HTTP.Addr, err)
	}
	return a.Serve(ctx, l)
}

// Close releases the store connection.
func (a *App) Close() error {
	return a.conn.Store.Close()
}
