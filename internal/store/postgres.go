package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// OpenPostgres opens a Postgres pool for url and verifies it answers within
// pingTimeout.
func OpenPostgres(ctx context.Context, url string, pingTimeout time.Duration) (*SQLStore, error) {
	db, err := sqlx.Open("pgx", normalizePostgresURL(url))
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	return newSQLStore(db, BackendPostgres), nil
}

// normalizePostgresURL accepts driver-qualified schemes such as
// postgresql+psycopg2:// and reduces them to what pgx understands.
func normalizePostgresURL(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if base, _, qualified := strings.Cut(scheme, "+"); qualified {
		return base + "://" + rest
	}
	return url
}
