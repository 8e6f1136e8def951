package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Backend names the database engine behind a store.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// SQLStore implements Store on top of a process-wide sqlx connection pool.
// Every operation runs in its own session.
type SQLStore struct {
	db      *sqlx.DB
	backend Backend
}

func newSQLStore(db *sqlx.DB, backend Backend) *SQLStore {
	return &SQLStore{db: db, backend: backend}
}

// Backend reports which engine the store talks to.
func (s *SQLStore) Backend() Backend {
	return s.backend
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// withSession checks a connection out of the pool for one unit of work and
// returns it on every exit path. A release failure is reported only when fn
// itself succeeded.
func (s *SQLStore) withSession(
	ctx context.Context,
	fn func(conn *sqlx.Conn) error,
) (err error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquiring session: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("releasing session: %w", cerr)
		}
	}()

	return fn(conn)
}

// withTx runs fn inside a transaction on a single session. The transaction
// is rolled back unless fn succeeds and the commit goes through.
func (s *SQLStore) withTx(
	ctx context.Context,
	fn func(tx *sqlx.Tx) error,
) error {
	return s.withSession(ctx, func(conn *sqlx.Conn) error {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// now returns the insert timestamp used for created_at. It is truncated to
// microseconds, the finest precision every backend keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
