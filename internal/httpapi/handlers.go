package httpapi

import (
	"net/http"

	"github.com/nhle/geodev/internal/schema"
)

const (
	serviceName        = "Geo Development Demo API"
	serviceDescription = "API for managing real estate development projects and tasks"
	serviceVersion     = "1.0.0"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     serviceName,
		"description": serviceDescription,
		"version":     serviceVersion,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store != nil {
		if err := s.opts.Store.Ping(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "readiness check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"backend": s.opts.Backend,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"backend": s.opts.Backend,
	})
}

// ---- projects

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req schema.ProjectCreate
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	created, err := s.projects.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	projects, err := s.projects.List(r.Context(), page)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseProjectID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	found, err := s.projects.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// ---- tasks

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var req schema.TaskCreate
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	created, err := s.tasks.Create(r.Context(), projectID, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	page, err := parsePage(r.URL.Query())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	tasks, err := s.tasks.List(r.Context(), projectID, page)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
