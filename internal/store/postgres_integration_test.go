package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/geodev/internal/model"
	"github.com/nhle/geodev/internal/store"
	"github.com/nhle/geodev/internal/testutil"
)

func TestPostgresRoundTrip(t *testing.T) {
	dbURL := os.Getenv("GEODEV_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("GEODEV_TEST_DATABASE_URL not set (integration test)")
	}
	ctx := context.Background()

	s, err := store.OpenPostgres(ctx, dbURL, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Equal(t, store.BackendPostgres, s.Backend())
	require.NoError(t, s.CreateTables(ctx))

	p, err := s.CreateProject(ctx, model.Project{Name: "pg roundtrip", Description: testutil.StrPtr("d")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DeleteProject(ctx, p.ID) })

	task, err := s.CreateTask(ctx, model.Task{ProjectID: p.ID, Title: "survey"})
	require.NoError(t, err)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, task.ID, got.Tasks[0].ID)

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	tasks, err := s.ListTasks(ctx, p.ID, store.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
