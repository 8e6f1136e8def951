package testutil

import (
	"context"
	"testing"

	"github.com/nhle/geodev/internal/model"
	"github.com/nhle/geodev/internal/store"
)

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// MustCreateProject stores a project named name and returns it.
func MustCreateProject(t *testing.T, s store.Store, name string) model.Project {
	t.Helper()

	p, err := s.CreateProject(context.Background(), model.Project{Name: name})
	if err != nil {
		t.Fatalf("creating project %q: %v", name, err)
	}
	return p
}

// MustCreateTask stores a task titled title under projectID and returns it.
func MustCreateTask(t *testing.T, s store.Store, projectID int64, title string) model.Task {
	t.Helper()

	task, err := s.CreateTask(context.Background(), model.Task{ProjectID: projectID, Title: title})
	if err != nil {
		t.Fatalf("creating task %q: %v", title, err)
	}
	return task
}
