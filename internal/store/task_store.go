package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/geodev/internal/model"
)

const taskColumns = "id, project_id, title, notes, created_at"

// CreateTask inserts a new task and returns it with its assigned ID and
// creation time. The parent project is not checked here; a missing parent
// surfaces as a foreign key error from the database.
func (s *SQLStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	task.CreatedAt = now()

	err := s.withSession(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &task.ID, conn.Rebind(`
			INSERT INTO tasks (project_id, title, notes, created_at)
			VALUES (?, ?, ?, ?)
			RETURNING id`),
			task.ProjectID, task.Title, task.Notes, task.CreatedAt,
		)
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task in project %d: %w", task.ProjectID, err)
	}
	return task, nil
}

// ListTasks retrieves a page of a project's tasks in insertion order.
func (s *SQLStore) ListTasks(
	ctx context.Context,
	projectID int64,
	opts ListOptions,
) ([]model.Task, error) {
	tasks := []model.Task{}
	err := s.withSession(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &tasks, conn.Rebind(`
			SELECT `+taskColumns+` FROM tasks
			WHERE project_id = ?
			ORDER BY id
			LIMIT ? OFFSET ?`),
			projectID, opts.Limit, opts.Offset,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("querying tasks for project %d: %w", projectID, err)
	}
	for i := range tasks {
		tasks[i].CreatedAt = tasks[i].CreatedAt.UTC()
	}
	return tasks, nil
}
