package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nhle/geodev/internal/schema"
)

// ProjectService is what the project routes call into.
type ProjectService interface {
	Create(ctx context.Context, in schema.ProjectCreate) (schema.Project, error)
	List(ctx context.Context, page schema.Page) ([]schema.Project, error)
	Get(ctx context.Context, id int64) (schema.ProjectWithTasks, error)
}

// TaskService is what the task routes call into.
type TaskService interface {
	Create(ctx context.Context, projectID int64, in schema.TaskCreate) (schema.Task, error)
	List(ctx context.Context, projectID int64, page schema.Page) ([]schema.Task, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the server's ambient behavior. Zero values are valid.
type Options struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	CORSOrigins    []string

	// Store and Backend feed /readyz. A nil Store always reports ready.
	Store   Pinger
	Backend string
}

// Server is the HTTP API over the project and task services.
type Server struct {
	projects ProjectService
	tasks    TaskService
	opts     Options
	logger   *slog.Logger

	mux     *http.ServeMux
	handler http.Handler
}

// NewServer registers every route and wraps the mux in the middleware chain.
func NewServer(projects ProjectService, tasks TaskService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		projects: projects,
		tasks:    tasks,
		opts:     opts,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	srv.mux.HandleFunc("GET /{$}", srv.handleRoot)
	srv.mux.HandleFunc("GET /health", srv.handleHealth)
	srv.mux.HandleFunc("GET /readyz", srv.handleReady)

	// Collection routes answer with and without the trailing slash.
	for _, base := range []string{"/projects", "/projects/{$}"} {
		srv.mux.HandleFunc("POST "+base, srv.handleCreateProject)
		srv.mux.HandleFunc("GET "+base, srv.handleListProjects)
	}
	srv.mux.HandleFunc("GET /projects/{project_id}", srv.handleGetProject)

	for _, base := range []string{"/projects/{project_id}/tasks", "/projects/{project_id}/tasks/{$}"} {
		srv.mux.HandleFunc("POST "+base, srv.handleCreateTask)
		srv.mux.HandleFunc("GET "+base, srv.handleListTasks)
	}

	srv.handler = withMiddleware(srv.mux, logger, opts)
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
