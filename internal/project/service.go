package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/geodev/internal/schema"
	"github.com/nhle/geodev/internal/store"
)

// Service creates and reads projects.
type Service struct {
	repo Repository
}

// NewService returns a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload and stores a new project. Names need not be
// unique.
func (s *Service) Create(ctx context.Context, in schema.ProjectCreate) (schema.Project, error) {
	if err := in.Validate(); err != nil {
		return schema.Project{}, err
	}

	created, err := s.repo.CreateProject(ctx, in.Entity())
	if err != nil {
		return schema.Project{}, err
	}
	return schema.NewProject(created), nil
}

// List returns one page of projects in insertion order.
func (s *Service) List(ctx context.Context, page schema.Page) ([]schema.Project, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	projects, err := s.repo.ListProjects(ctx, store.ListOptions{
		Offset: page.Skip,
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return schema.NewProjects(projects), nil
}

// Get returns a project with all of its tasks, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (schema.ProjectWithTasks, error) {
	found, err := s.repo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return schema.ProjectWithTasks{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return schema.ProjectWithTasks{}, err
	}
	return schema.NewProjectWithTasks(found), nil
}
