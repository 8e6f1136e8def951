package store

import (
	"context"
	"errors"

	"github.com/nhle/geodev/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ListOptions controls pagination for list queries. Rows are always returned
// in primary-key (insertion) order.
type ListOptions struct {
	Offset int
	Limit  int
}

// Store defines the persistence interface for projects and their tasks.
type Store interface {
	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) (model.Project, error)
	ListProjects(ctx context.Context, opts ListOptions) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (model.Project, error)
	ProjectExists(ctx context.Context, id int64) (bool, error)
	DeleteProject(ctx context.Context, id int64) error

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	ListTasks(ctx context.Context, projectID int64, opts ListOptions) ([]model.Task, error)

	// === Lifecycle ===

	CreateTables(ctx context.Context) error
	Ping(ctx context.Context) error
	Backend() Backend
	Close() error
}

var _ Store = (*SQLStore)(nil)
