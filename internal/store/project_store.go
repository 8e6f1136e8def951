package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/geodev/internal/model"
)

const projectColumns = "id, name, description, created_at"

// CreateProject inserts a new project and returns it with its assigned ID
// and creation time. Any ID or CreatedAt set by the caller is ignored.
func (s *SQLStore) CreateProject(
	ctx context.Context,
	project model.Project,
) (model.Project, error) {
	project.CreatedAt = now()
	project.Tasks = nil

	err := s.withSession(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &project.ID, conn.Rebind(`
			INSERT INTO projects (name, description, created_at)
			VALUES (?, ?, ?)
			RETURNING id`),
			project.Name, project.Description, project.CreatedAt,
		)
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project: %w", err)
	}
	return project, nil
}

// ListProjects retrieves a page of projects in insertion order.
func (s *SQLStore) ListProjects(
	ctx context.Context,
	opts ListOptions,
) ([]model.Project, error) {
	projects := []model.Project{}
	err := s.withSession(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &projects, conn.Rebind(
			"SELECT "+projectColumns+" FROM projects ORDER BY id LIMIT ? OFFSET ?"),
			opts.Limit, opts.Offset,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	for i := range projects {
		projects[i].CreatedAt = projects[i].CreatedAt.UTC()
	}
	return projects, nil
}

// GetProject retrieves a single project by ID together with all of its
// tasks in insertion order. It returns ErrNotFound if no such project exists.
func (s *SQLStore) GetProject(ctx context.Context, id int64) (model.Project, error) {
	var project model.Project
	err := s.withSession(ctx, func(conn *sqlx.Conn) error {
		err := conn.GetContext(ctx, &project, conn.Rebind(
			"SELECT "+projectColumns+" FROM projects WHERE id = ?"), id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		project.Tasks = []model.Task{}
		return conn.SelectContext(ctx, &project.Tasks, conn.Rebind(
			"SELECT "+taskColumns+" FROM tasks WHERE project_id = ? ORDER BY id"), id)
	})
	if err != nil {
		return model.Project{}, fmt.Errorf("getting project %d: %w", id, err)
	}

	project.CreatedAt = project.CreatedAt.UTC()
	for i := range project.Tasks {
		project.Tasks[i].CreatedAt = project.Tasks[i].CreatedAt.UTC()
	}
	return project, nil
}

// ProjectExists reports whether a project with the given ID is stored.
func (s *SQLStore) ProjectExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.withSession(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &count, conn.Rebind(
			"SELECT COUNT(*) FROM projects WHERE id = ?"), id)
	})
	if err != nil {
		return false, fmt.Errorf("checking project %d: %w", id, err)
	}
	return count > 0, nil
}

// DeleteProject removes a project and every task it owns in one
// transaction. The tasks are deleted explicitly so the cascade holds even
// on a connection that does not enforce foreign keys.
func (s *SQLStore) DeleteProject(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM tasks WHERE project_id = ?"), id); err != nil {
			return fmt.Errorf("deleting tasks: %w", err)
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(
			"DELETE FROM projects WHERE id = ?"), id)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}
