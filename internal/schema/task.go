package schema

import (
	"time"

	"github.com/nhle/geodev/internal/model"
)

// TaskCreate is the payload accepted when creating a task. The owning
// project comes from the request path, never from the payload.
type TaskCreate struct {
	Title *string `json:"title" validate:"required,max=255"`
	Notes *string `json:"notes"`
}

// Validate checks the payload against its declared shape.
func (in TaskCreate) Validate() error {
	return check(in)
}

// Entity builds the record to insert under projectID.
func (in TaskCreate) Entity(projectID int64) model.Task {
	return model.Task{
		ProjectID: projectID,
		Title:     derefString(in.Title),
		Notes:     cloneString(in.Notes),
	}
}

// Task is the read shape of a stored task.
type Task struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Title     string    `json:"title"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTask serializes a stored task.
func NewTask(t model.Task) Task {
	return Task{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Notes:     cloneString(t.Notes),
		CreatedAt: t.CreatedAt.UTC(),
	}
}

// NewTasks serializes a list of stored tasks. The result is never nil.
func NewTasks(ts []model.Task) []Task {
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTask(t))
	}
	return out
}
