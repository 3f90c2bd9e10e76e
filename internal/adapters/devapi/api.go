// Package devapi implements the backend REST surface over an in-memory store.
// It backs local development and the end-to-end tests of the page server.
package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	repository "github.com/okian/staffboard/internal/adapters/repository"
	"github.com/okian/staffboard/internal/domain/model"
	"github.com/okian/staffboard/pkg/logger"
)

// DefaultSessionEmployee is the employee the session endpoints act for.
const DefaultSessionEmployee = 1

// API serves the backend endpoints.
type API struct {
	store           repository.Store
	logger          logger.Logger
	sessionEmployee int
}

// Option applies a configuration option to the API.
type Option func(*API)

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSessionEmployee sets the employee behind /api/employee/* endpoints.
func WithSessionEmployee(id int) Option {
	return func(a *API) {
		if id > 0 {
			a.sessionEmployee = id
		}
	}
}

// New creates an API over store.
func New(store repository.Store, opts ...Option) *API {
	a := &API{
		store:           store,
		logger:          logger.Discard(),
		sessionEmployee: DefaultSessionEmployee,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register attaches every backend route to r.
func (a *API) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/employee/skills", a.handleEmployeeSkills).Methods(http.MethodGet)
	api.HandleFunc("/employee/skills", a.handleAddEmployeeSkill).Methods(http.MethodPost)
	api.HandleFunc("/employee/projects", a.handleEmployeeProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", a.handleProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", a.handleCreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{employee_id:[0-9]+}", a.handleProjectsFor).Methods(http.MethodGet)
	api.HandleFunc("/skills/{employee_id:[0-9]+}", a.handleSkillsFor).Methods(http.MethodGet)
	api.HandleFunc("/add_skill", a.handleAddSkill).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{project_id}/{employee_id:[0-9]+}", a.handleTasks).Methods(http.MethodGet)
	api.HandleFunc("/complete_task/{task_id:[0-9]+}", a.handleCompleteTask).Methods(http.MethodPost)
	api.HandleFunc("/employees", a.handleEmployees).Methods(http.MethodGet)
	api.HandleFunc("/assignment_logs/{employee_id:[0-9]+}", a.handleAssignmentLogs).Methods(http.MethodGet)
	api.HandleFunc("/milestone_complete/{milestone_id:[0-9]+}", a.handleCompleteMilestone).Methods(http.MethodPost)
}

// NewRouter returns a router with the backend routes registered.
func (a *API) NewRouter(ctx context.Context) *mux.Router {
	r := mux.NewRouter()
	a.Register(ctx, r)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error(r.Context(), "request failed", logger.String("operation", op), logger.Error(err))
	} else {
		a.logger.Debug(r.Context(), "request rejected", logger.String("operation", op), logger.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: message(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrInvalid),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, model.ErrEmptySkill),
		errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// message maps known failures onto the backend's user-facing wording.
func message(err error) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	return err.Error()
}
