package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/geodev/internal/model"
	"github.com/nhle/geodev/internal/store"
	"github.com/nhle/geodev/internal/testutil"
)

func TestCreateProjectAssignsServerFields(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	p, err := s.CreateProject(ctx, model.Project{
		ID:          99,
		Name:        "Lakeside",
		Description: testutil.StrPtr("waterfront lots"),
		CreatedAt:   time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID, "client-supplied id is ignored")
	assert.True(t, p.CreatedAt.After(before), "created_at assigned at insert")
	assert.Equal(t, time.UTC, p.CreatedAt.Location())

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Lakeside", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "waterfront lots", *got.Description)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt), "created_at round-trips: %s vs %s", p.CreatedAt, got.CreatedAt)
	assert.Empty(t, got.Tasks)
	assert.NotNil(t, got.Tasks)
}

func TestCreateProjectNullDescription(t *testing.T) {
	s := testutil.NewTestStore(t)

	p := testutil.MustCreateProject(t, s, "Hilltop")
	got, err := s.GetProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestProjectIDsAreUniqueAndIncreasing(t *testing.T) {
	s := testutil.NewTestStore(t)

	var last int64
	for i := 0; i < 5; i++ {
		p := testutil.MustCreateProject(t, s, "same name")
		assert.Greater(t, p.ID, last)
		last = p.ID
	}
}

func TestGetProjectNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetProject(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetProjectLoadsOwnTasksInOrder(t *testing.T) {
	s := testutil.NewTestStore(t)

	a := testutil.MustCreateProject(t, s, "A")
	b := testutil.MustCreateProject(t, s, "B")
	testutil.MustCreateTask(t, s, a.ID, "a1")
	testutil.MustCreateTask(t, s, b.ID, "b1")
	testutil.MustCreateTask(t, s, a.ID, "a2")
	testutil.MustCreateTask(t, s, a.ID, "a3")

	got, err := s.GetProject(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 3)
	for i, title := range []string{"a1", "a2", "a3"} {
		assert.Equal(t, title, got.Tasks[i].Title)
		assert.True(t, got.Owns(got.Tasks[i]))
	}
}

func TestListProjectsPaging(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"p1", "p2", "p3", "p4", "p5"} {
		testutil.MustCreateProject(t, s, name)
	}

	page, err := s.ListProjects(ctx, store.ListOptions{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "p3", page[0].Name)
	assert.Equal(t, "p4", page[1].Name)

	all, err := s.ListProjects(ctx, store.ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	none, err := s.ListProjects(ctx, store.ListOptions{Offset: 10, Limit: 100})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProjectExists(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p := testutil.MustCreateProject(t, s, "A")

	ok, err := s.ProjectExists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ProjectExists(ctx, p.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateTaskRequiresParentRow(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTask(ctx, model.Task{ProjectID: 7, Title: "orphan"})
	require.Error(t, err, "foreign key rejects a task without a project")

	tasks, err := s.ListTasks(ctx, 7, store.ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasksPaging(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p := testutil.MustCreateProject(t, s, "A")
	other := testutil.MustCreateProject(t, s, "B")
	for _, title := range []string{"t1", "t2", "t3", "t4", "t5"} {
		testutil.MustCreateTask(t, s, p.ID, title)
		testutil.MustCreateTask(t, s, other.ID, "other "+title)
	}

	page, err := s.ListTasks(ctx, p.ID, store.ListOptions{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "t3", page[0].Title)
	assert.Equal(t, "t4", page[1].Title)
	for _, task := range page {
		assert.Equal(t, p.ID, task.ProjectID)
	}
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	doomed := testutil.MustCreateProject(t, s, "doomed")
	kept := testutil.MustCreateProject(t, s, "kept")
	testutil.MustCreateTask(t, s, doomed.ID, "d1")
	testutil.MustCreateTask(t, s, doomed.ID, "d2")
	testutil.MustCreateTask(t, s, kept.ID, "k1")

	require.NoError(t, s.DeleteProject(ctx, doomed.ID))

	_, err := s.GetProject(ctx, doomed.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	orphans, err := s.ListTasks(ctx, doomed.ID, store.ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, orphans)

	survivors, err := s.ListTasks(ctx, kept.ID, store.ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, survivors, 1)
}

func TestDeleteProjectNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.DeleteProject(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateTablesIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p := testutil.MustCreateProject(t, s, "survives")
	require.NoError(t, s.CreateTables(ctx))

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives", got.Name)
}
