package model

import "time"

// Task is a unit of work. It has no lifecycle of its own: it is created
// under an existing project and removed when that project is deleted.
type Task struct {
	ID        int64     `db:"id"`
	ProjectID int64     `db:"project_id"`
	Title     string    `db:"title"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}
