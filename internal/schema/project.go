package schema

import (
	"time"

	"github.com/nhle/geodev/internal/model"
)

// ProjectCreate is the payload accepted when creating a project. Name is a
// pointer so a missing or null name is told apart from an empty one; only
// the former is rejected.
type ProjectCreate struct {
	Name        *string `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

// Validate checks the payload against its declared shape.
func (in ProjectCreate) Validate() error {
	return check(in)
}

// Entity builds the record to insert. Server-assigned fields are left zero.
// It expects a validated payload.
func (in ProjectCreate) Entity() model.Project {
	return model.Project{
		Name:        derefString(in.Name),
		Description: cloneString(in.Description),
	}
}

// Project is the read shape of a stored project.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectWithTasks is the read shape returned when fetching a single project.
type ProjectWithTasks struct {
	Project
	Tasks []Task `json:"tasks"`
}

// NewProject serializes a stored project.
func NewProject(p model.Project) Project {
	return Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: cloneString(p.Description),
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

// NewProjects serializes a list of stored projects. The result is never nil.
func NewProjects(ps []model.Project) []Project {
	out := make([]Project, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProject(p))
	}
	return out
}

// NewProjectWithTasks serializes a project together with its loaded tasks.
func NewProjectWithTasks(p model.Project) ProjectWithTasks {
	return ProjectWithTasks{
		Project: NewProject(p),
		Tasks:   NewTasks(p.Tasks),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
