package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/geodev/internal/model"
	"github.com/nhle/geodev/internal/project"
	"github.com/nhle/geodev/internal/schema"
	"github.com/nhle/geodev/internal/store"
	"github.com/nhle/geodev/internal/testutil"
)

func assertSameProject(t *testing.T, want, got schema.Project) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Description, got.Description)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at %s vs %s", want.CreatedAt, got.CreatedAt)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := project.NewService(s)
	ctx := context.Background()

	created, err := svc.Create(ctx, schema.ProjectCreate{
		Name:        testutil.StrPtr("Lakeside"),
		Description: testutil.StrPtr("twelve lots"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assertSameProject(t, created, got.Project)
	assert.Empty(t, got.Tasks)
}

func TestGetReturnsAllChildTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := project.NewService(s)

	p := testutil.MustCreateProject(t, s, "Lakeside")
	var want []model.Task
	for _, title := range []string{"Survey land", "Zoning", "Permits"} {
		want = append(want, testutil.MustCreateTask(t, s, p.ID, title))
	}

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, len(want))
	for i := range want {
		w := schema.NewTask(want[i])
		assert.Equal(t, w.ID, got.Tasks[i].ID)
		assert.Equal(t, w.ProjectID, got.Tasks[i].ProjectID)
		assert.Equal(t, w.Title, got.Tasks[i].Title)
		assert.Equal(t, w.Notes, got.Tasks[i].Notes)
		assert.True(t, w.CreatedAt.Equal(got.Tasks[i].CreatedAt))
	}
}

func TestCreateAcceptsEmptyName(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := project.NewService(s)
	ctx := context.Background()

	created, err := svc.Create(ctx, schema.ProjectCreate{Name: testutil.StrPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Name)
}

func TestGetMissingProject(t *testing.T) {
	svc := project.NewService(testutil.NewTestStore(t))

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestListPaging(t *testing.T) {
	s := testutil.NewTestStore(t)
	svc := project.NewService(s)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three", "four", "five"} {
		_, err := svc.Create(ctx, schema.ProjectCreate{Name: testutil.StrPtr(name)})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, schema.Page{Skip: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "three", page[0].Name)
	assert.Equal(t, "four", page[1].Name)

	all, err := svc.List(ctx, schema.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

// countingRepo records whether the store was touched.
type countingRepo struct {
	calls int
	err   error
}

func (r *countingRepo) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	r.calls++
	return p, r.err
}

func (r *countingRepo) ListProjects(ctx context.Context, opts store.ListOptions) ([]model.Project, error) {
	r.calls++
	return nil, r.err
}

func (r *countingRepo) GetProject(ctx context.Context, id int64) (model.Project, error) {
	r.calls++
	return model.Project{}, r.err
}

func TestInvalidInputNeverReachesStore(t *testing.T) {
	repo := &countingRepo{}
	svc := project.NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, schema.ProjectCreate{})
	var verr *schema.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.List(ctx, schema.Page{Skip: -1, Limit: 10})
	assert.ErrorAs(t, err, &verr)

	assert.Zero(t, repo.calls)
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := project.NewService(&countingRepo{err: boom})
	ctx := context.Background()

	_, err := svc.Create(ctx, schema.ProjectCreate{Name: testutil.StrPtr("x")})
	assert.ErrorIs(t, err, boom)

	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, project.ErrNotFound)
}
