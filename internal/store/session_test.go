package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/geodev/internal/model"
)

func openMemory(t *testing.T) *SQLStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.CreateTables(context.Background()))
	return s
}

func TestSessionReleasedOnEveryExitPath(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.withSession(ctx, func(conn *sqlx.Conn) error {
		assert.Equal(t, 1, s.db.Stats().InUse)
		return nil
	}))
	assert.Equal(t, 0, s.db.Stats().InUse)

	boom := errors.New("boom")
	err := s.withSession(ctx, func(conn *sqlx.Conn) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.db.Stats().InUse)

	assert.Panics(t, func() {
		_ = s.withSession(ctx, func(conn *sqlx.Conn) error { panic("kaboom") })
	})
	assert.Equal(t, 0, s.db.Stats().InUse)

	// The single pooled connection must still be usable afterwards.
	_, err = s.ProjectExists(ctx, 1)
	assert.NoError(t, err)
}

func TestSessionReleasedAfterFailedQuery(t *testing.T) {
	s := openMemory(t)

	_, err := s.GetProject(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.db.Stats().InUse)
}

func TestCreateTablesRecordsVersion(t *testing.T) {
	s := openMemory(t)

	var version int
	require.NoError(t, s.db.Get(&version, "SELECT MAX(version) FROM schema_version"))
	assert.Equal(t, len(sqliteMigrations), version)

	require.NoError(t, s.CreateTables(context.Background()))
	var rows int
	require.NoError(t, s.db.Get(&rows, "SELECT COUNT(*) FROM schema_version"))
	assert.Equal(t, len(sqliteMigrations), rows)
}

func TestForeignKeyCascadeWithoutExplicitDelete(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, model.Project{Name: "raw"})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, model.Task{ProjectID: p.ID, Title: "t"})
	require.NoError(t, err)

	// Deleting the row directly still removes its tasks through the
	// ON DELETE CASCADE clause.
	_, err = s.db.Exec("DELETE FROM projects WHERE id = ?", p.ID)
	require.NoError(t, err)

	var count int
	require.NoError(t, s.db.Get(&count, "SELECT COUNT(*) FROM tasks"))
	assert.Zero(t, count)
}
