package project

import (
	"context"

	"github.com/nhle/geodev/internal/model"
	"github.com/nhle/geodev/internal/store"
)

// Repository is the slice of the store the project service needs.
type Repository interface {
	CreateProject(ctx context.Context, project model.Project) (model.Project, error)
	ListProjects(ctx context.Context, opts store.ListOptions) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (model.Project, error)
}
