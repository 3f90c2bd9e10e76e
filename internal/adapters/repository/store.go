// Package repository holds the data served by the development backend.
package repository

import (
	"context"

	"github.com/okian/staffboard/internal/domain/model"
)

// Store provides read/write access to employees, projects and tasks.
type Store interface {
	// Skills returns the skills of an employee in insertion order.
	// Returns ErrNotFound if the employee is unknown.
	Skills(ctx context.Context, employeeID int) ([]string, error)
	// AddSkill appends a skill to an employee's skill set. Adding a skill the
	// employee already has is a no-op.
	AddSkill(ctx context.Context, employeeID int, skill string) error

	// Projects returns every project in creation order.
	Projects(ctx context.Context) []model.Project
	// AddProject creates a project. Returns ErrDuplicate if the id is taken.
	AddProject(ctx context.Context, p model.Project) error
	// ProjectsFor returns the projects an employee is assigned to.
	ProjectsFor(ctx context.Context, employeeID int) ([]model.Project, error)
	// Assign adds an employee to a project.
	Assign(ctx context.Context, employeeID int, projectID string) error

	// Tasks returns the open tasks of a project assigned to an employee.
	Tasks(ctx context.Context, projectID string, employeeID int) []model.Task
	// AddTask creates a task and returns its id.
	AddTask(ctx context.Context, projectID string, employeeID int, name string) (int, error)
	// CompleteTask marks a task completed. Returns ErrNotFound for unknown ids.
	CompleteTask(ctx context.Context, taskID int) (model.Task, error)

	// Employees returns every employee ordered by id.
	Employees(ctx context.Context) []model.Employee
	// AddEmployee creates an employee and returns its id.
	AddEmployee(ctx context.Context, name string, skills ...string) int

	// AddMilestone creates a milestone for an employee and returns its id.
	AddMilestone(ctx context.Context, employeeID int, name string) (int, error)
	// CompleteMilestone marks a milestone completed.
	CompleteMilestone(ctx context.Context, milestoneID int) error

	// AssignmentLogs returns an employee's log lines, newest first.
	AssignmentLogs(ctx context.Context, employeeID int) []model.AssignmentLog
}
