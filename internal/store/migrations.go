package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migration holds a single create-if-absent schema batch with its version.
type migration struct {
	version int
	sql     string
}

// Each list's versions must be sequential starting from 1. Tables are only
// ever created if absent; nothing is altered or dropped.
var sqliteMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS projects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        VARCHAR(255) NOT NULL,
	description TEXT,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS ix_projects_name ON projects(name);

CREATE TABLE IF NOT EXISTS tasks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title      VARCHAR(255) NOT NULL,
	notes      TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS ix_tasks_project_id ON tasks(project_id);
`,
	},
}

var postgresMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS projects (
	id          BIGSERIAL PRIMARY KEY,
	name        VARCHAR(255) NOT NULL,
	description TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_projects_name ON projects(name);

CREATE TABLE IF NOT EXISTS tasks (
	id         BIGSERIAL PRIMARY KEY,
	project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title      VARCHAR(255) NOT NULL,
	notes      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_tasks_project_id ON tasks(project_id);
`,
	},
}

func (s *SQLStore) migrations() []migration {
	if s.backend == BackendPostgres {
		return postgresMigrations
	}
	return sqliteMigrations
}

// CreateTables creates any tables that do not exist yet. It checks the
// recorded schema version and applies outstanding batches in order, each in
// its own transaction.
func (s *SQLStore) CreateTables(ctx context.Context) error {
	return s.withSession(ctx, func(conn *sqlx.Conn) error {
		if _, err := conn.ExecContext(ctx,
			"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)",
		); err != nil {
			return fmt.Errorf("creating schema_version table: %w", err)
		}

		var currentVersion int
		if err := conn.GetContext(ctx, &currentVersion,
			"SELECT COALESCE(MAX(version), 0) FROM schema_version",
		); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}

		for _, m := range s.migrations() {
			if m.version <= currentVersion {
				continue
			}
			if err := applyMigration(ctx, conn, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyMigration(ctx context.Context, conn *sqlx.Conn, m migration) error {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration v%d: %w", m.version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return fmt.Errorf("applying migration v%d: %w", m.version, err)
	}
	if _, err := tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO schema_version (version) VALUES (?)"), m.version,
	); err != nil {
		return fmt.Errorf("recording migration v%d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration v%d: %w", m.version, err)
	}
	return nil
}
