package model

import "time"

// Table names for the persisted entities.
const (
	ProjectsTable = "projects"
	TasksTable    = "tasks"
)

// Project is a development effort that exclusively owns its tasks.
// Deleting a project deletes every task that references it.
type Project struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`

	// Tasks is populated only by queries that load the project's children,
	// in insertion order.
	Tasks []Task `db:"-"`
}

// Owns reports whether t belongs to this project.
func (p Project) Owns(t Task) bool {
	return p.ID != 0 && t.ProjectID == p.ID
}
