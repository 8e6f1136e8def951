package task

import (
	"context"
	"fmt"

	"github.com/nhle/geodev/internal/schema"
	"github.com/nhle/geodev/internal/store"
)

// Service manages tasks under a parent project.
//
// The parent check and the insert that follows run in separate sessions
// with no transaction around them. A project deleted in between makes the
// insert fail on the foreign key, which surfaces as a storage error.
type Service struct {
	repo Repository
}

// NewService returns a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload, checks that the parent project exists and
// stores the task under it. The project comes from projectID only.
func (s *Service) Create(ctx context.Context, projectID int64, in schema.TaskCreate) (schema.Task, error) {
	if err := in.Validate(); err != nil {
		return schema.Task{}, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return schema.Task{}, err
	}

	created, err := s.repo.CreateTask(ctx, in.Entity(projectID))
	if err != nil {
		return schema.Task{}, err
	}
	return schema.NewTask(created), nil
}

// List returns one page of a project's tasks in insertion order.
func (s *Service) List(ctx context.Context, projectID int64, page schema.Page) ([]schema.Task, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasks(ctx, projectID, store.ListOptions{
		Offset: page.Skip,
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return schema.NewTasks(tasks), nil
}

func (s *Service) requireProject(ctx context.Context, projectID int64) error {
	ok, err := s.repo.ProjectExists(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("project %d: %w", projectID, ErrProjectNotFound)
	}
	return nil
}
