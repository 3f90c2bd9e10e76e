// Package site serves the HTML pages. Every page request runs the page's
// view-sync fetches and renders the patched document; form posts run the
// matching view-sync action first.
package site

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/viewsync"
	"github.com/okian/staffboard/pkg/logger"
)

// Views is the view-sync surface the pages use. *viewsync.ViewSync implements it.
type Views interface {
	LoadEmployeeDashboard(ctx context.Context, doc *dom.Document, s viewsync.Session, skip ...string) error
	LoadProjectsPage(ctx context.Context, doc *dom.Document, s viewsync.Session, skip ...string) error
	LoadTasksPage(ctx context.Context, doc *dom.Document, s viewsync.Session, skip ...string) error

	AddEmployeeSkill(ctx context.Context, doc *dom.Document, s viewsync.Session) error
	AddSkill(ctx context.Context, doc *dom.Document, s viewsync.Session) error
	CreateProject(ctx context.Context, doc *dom.Document, s viewsync.Session) error
	CompleteTask(ctx context.Context, doc *dom.Document, s viewsync.Session, taskID int) error
	CompleteMilestone(ctx context.Context, doc *dom.Document, s viewsync.Session, milestoneID int) error
}

var _ Views = (*viewsync.ViewSync)(nil)

// Server wires the page routes.
type Server struct {
	views   Views
	session viewsync.Session
	logger  logger.Logger
	health  *HealthHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSession sets the employee the pages are rendered for.
func WithSession(sess viewsync.Session) Option {
	return func(s *Server) {
		s.session = sess
	}
}

// NewServer creates a page server over views.
func NewServer(views Views, opts ...Option) *Server {
	s := &Server{
		views:   views,
		session: viewsync.Session{EmployeeID: 1},
		logger:  logger.Discard(),
		health:  NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches every page route to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Use(RequestIDMiddleware, MetricsMiddleware)

	r.HandleFunc("/healthz", s.health.HandleHealth).Methods(http.MethodGet).Name("healthz")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(FS()))).Name("static")

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet).Name("root")

	r.HandleFunc("/employee_dashboard", s.handleDashboard).Methods(http.MethodGet).Name("dashboard")
	r.HandleFunc("/employee_dashboard/skills", s.handleAddEmployeeSkill).Methods(http.MethodPost).Name("add_employee_skill")
	r.HandleFunc("/employee_dashboard/add_skill", s.handleAddSkill).Methods(http.MethodPost).Name("add_skill")
	r.HandleFunc("/employee_dashboard/milestones/complete", s.handleCompleteMilestone).Methods(http.MethodPost).Name("complete_milestone_form")
	r.HandleFunc("/employee_dashboard/milestones/{milestone_id:[0-9]+}/complete", s.handleCompleteMilestone).Methods(http.MethodPost).Name("complete_milestone")

	r.HandleFunc("/projects", s.handleProjects).Methods(http.MethodGet).Name("projects")
	r.HandleFunc("/projects", s.handleCreateProject).Methods(http.MethodPost).Name("create_project")

	r.HandleFunc("/employee_tasks/{project_id}", s.handleTasks).Methods(http.MethodGet).Name("tasks")
	r.HandleFunc("/employee_tasks/{project_id}/complete/{task_id:[0-9]+}", s.handleCompleteTask).Methods(http.MethodPost).Name("complete_task")
}

// Handler returns a router with every page route registered.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := mux.NewRouter()
	s.Register(ctx, r)
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, dashboardPath, http.StatusFound)
}
