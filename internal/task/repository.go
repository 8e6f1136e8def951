package task

import (
	"context"

	"github.com/nhle/geodev/internal/model"
	"github.com/nhle/geodev/internal/store"
)

// Repository is the slice of the store the task service needs.
type Repository interface {
	ProjectExists(ctx context.Context, id int64) (bool, error)
	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	ListTasks(ctx context.Context, projectID int64, opts store.ListOptions) ([]model.Task, error)
}
