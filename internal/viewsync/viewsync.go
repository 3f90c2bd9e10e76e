// Package viewsync keeps rendered pages in step with the backend. Each
// operation fetches or mutates backend data and patches the containers of a
// dom.Document with the result.
//
// Failures never abort a page: a failed fetch is logged and counted, and its
// container keeps whatever it held before.
package viewsync

import (
	"context"
	"fmt"

	"github.com/okian/staffboard/internal/adapters/backend"
	"github.com/okian/staffboard/internal/domain/model"
	"github.com/okian/staffboard/pkg/logger"
	"github.com/okian/staffboard/pkg/metrics"
)

// Container and field ids the page templates provide.
const (
	SkillListID        = "skill-list"
	NewSkillID         = "new-skill"
	AssignedProjectsID = "assigned-projects"
	ProjectListID      = "project-list"
	ProjectFormID      = "project-form"
	ProjectIDFieldID   = "project_id"
	DescriptionFieldID = "description"
	MessageID          = "message"
	SkillsListID       = "skills-list"
	AddSkillFormID     = "add-skill-form"
	AddSkillInputID    = "add-skill-input"
	ProjectsListID     = "projects-list"
	TasksListID        = "tasks-list"
	EmployeeListID     = "employee-list"
	AssignmentLogsID   = "assignment-logs"
)

// EmptySkillAlert is shown when a skill form is submitted blank.
const EmptySkillAlert = "Skill cannot be empty!"

// Session identifies the employee the pages are rendered for.
type Session struct {
	EmployeeID int
}

// Backend is the REST surface the view-sync depends on. *backend.Client
// implements it.
type Backend interface {
	EmployeeSkills(ctx context.Context) ([]string, error)
	AddEmployeeSkill(ctx context.Context, skill string) (model.MessageResponse, error)
	SkillsFor(ctx context.Context, employeeID int) ([]string, error)
	AddSkill(ctx context.Context, skill string) (model.MessageResponse, error)

	AssignedProjects(ctx context.Context) ([]model.Project, error)
	Projects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, req model.ProjectRequest) (model.MessageResponse, error)
	ProjectsFor(ctx context.Context, employeeID int) ([]model.Project, error)

	Tasks(ctx context.Context, projectID string, employeeID int) ([]model.Task, error)
	CompleteTask(ctx context.Context, taskID int) (model.MessageResponse, error)

	Employees(ctx context.Context) ([]model.Employee, error)
	AssignmentLogs(ctx context.Context, employeeID int) ([]model.AssignmentLog, error)
	CompleteMilestone(ctx context.Context, milestoneID int) (model.MessageResponse, error)
}

var _ Backend = (*backend.Client)(nil)

// TaskActionFunc returns the form action of a task's "Complete" control.
type TaskActionFunc func(pagePath string, taskID int) string

// ViewSync runs view-sync operations against a Backend.
type ViewSync struct {
	backend    Backend
	logger     logger.Logger
	taskAction TaskActionFunc
}

// Option applies a configuration option to the ViewSync.
type Option func(*ViewSync)

// WithLogger sets the logger that receives fetch failures.
func WithLogger(l logger.Logger) Option {
	return func(v *ViewSync) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithTaskAction overrides where task "Complete" controls post to.
func WithTaskAction(f TaskActionFunc) Option {
	return func(v *ViewSync) {
		if f != nil {
			v.taskAction = f
		}
	}
}

// New creates a ViewSync over b.
func New(b Backend, opts ...Option) *ViewSync {
	v := &ViewSync{
		backend:    b,
		logger:     logger.Discard(),
		taskAction: defaultTaskAction,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func defaultTaskAction(pagePath string, taskID int) string {
	return fmt.Sprintf("%s/complete/%d", pagePath, taskID)
}

// fail logs and counts a failed operation and returns err unchanged.
func (v *ViewSync) fail(ctx context.Context, op string, err error) error {
	kind := backend.KindOf(err)
	metrics.RecordViewSyncError(op, kind)
	v.logger.Error(ctx, "view-sync operation failed",
		logger.String("operation", op),
		logger.String("kind", kind),
		logger.Error(err))
	return err
}
