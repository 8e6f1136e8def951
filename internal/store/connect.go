package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultPingTimeout bounds the reachability check of a configured database.
const DefaultPingTimeout = 5 * time.Second

// Options configures Connect.
type Options struct {
	// URL is the configured connection string. Empty selects the embedded
	// store directly.
	URL string

	// FallbackPath is the SQLite file used when URL is empty or unusable.
	FallbackPath string

	PingTimeout time.Duration
}

// Connection is the outcome of Connect.
type Connection struct {
	Store *SQLStore

	// Fallback is the reason the configured database was not used. It is
	// nil when the configured database is in use or none was configured.
	Fallback error
}

// Backend reports which engine ended up serving the process.
func (c *Connection) Backend() Backend {
	return c.Store.Backend()
}

// Connect resolves opts.URL into a store. When the configured database
// cannot be opened it falls back to the embedded SQLite store and records
// why in Connection.Fallback. An error is returned only when the fallback
// store cannot be opened either.
func Connect(ctx context.Context, opts Options) (*Connection, error) {
	if opts.FallbackPath == "" {
		opts.FallbackPath = DefaultSQLitePath
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = DefaultPingTimeout
	}

	url := strings.TrimSpace(opts.URL)
	if url != "" {
		s, err := openURL(ctx, url, opts.PingTimeout)
		if err == nil {
			return &Connection{Store: s}, nil
		}

		fallback, ferr := OpenSQLite(ctx, opts.FallbackPath)
		if ferr != nil {
			return nil, fmt.Errorf("opening fallback store after %v: %w", err, ferr)
		}
		return &Connection{Store: fallback, Fallback: err}, nil
	}

	s, err := OpenSQLite(ctx, opts.FallbackPath)
	if err != nil {
		return nil, err
	}
	return &Connection{Store: s}, nil
}

func openURL(ctx context.Context, url string, pingTimeout time.Duration) (*SQLStore, error) {
	if path, ok := sqlitePathFromURL(url); ok {
		return OpenSQLite(ctx, path)
	}
	return OpenPostgres(ctx, url, pingTimeout)
}

// sqlitePathFromURL recognizes sqlite:///relative.db, sqlite:////abs.db,
// file: URLs and bare file paths. Anything with a scheme or a key=value pair
// is left for Postgres.
func sqlitePathFromURL(url string) (string, bool) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return MemoryPath, true
		}
		return path, true
	case strings.HasPrefix(url, "file:"):
		return url, true
	case !strings.Contains(url, "://") && !strings.Contains(url, "="):
		return url, true
	default:
		return "", false
	}
}
