// Package model contains domain models passed between layers.
//
// Entities are transient: they reflect the last successful backend fetch and
// are never cached or mutated locally.
package model

import (
	"fmt"
	"strings"
)

// Skill is a free-form label attached to an employee.
type Skill = string

// Project is a unit of work identified by a caller-chosen id.
type Project struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
}

// Label renders the project the way list rows show it: "{project_id} - {description}".
func (p Project) Label() string {
	return fmt.Sprintf("%s - %s", p.ProjectID, p.Description)
}

// Validate checks the fields a project row cannot be rendered without.
func (p Project) Validate() error {
	if strings.TrimSpace(p.ProjectID) == "" {
		return fmt.Errorf("%w: project without project_id", ErrMalformed)
	}
	return nil
}

// Task belongs to a (project, employee) pair. Completed is implicit in
// backend responses and defaults to false.
type Task struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed,omitempty"`
}

// Validate checks the fields a task row cannot be rendered without.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task %d without name", ErrMalformed, t.ID)
	}
	return nil
}

// Employee is identified by a numeric id.
type Employee struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills,omitempty"`
}

// Label renders the employee as "{id} - {name}".
func (e Employee) Label() string {
	return fmt.Sprintf("%d - %s", e.ID, e.Name)
}

// AssignmentLog is one line of the task assignment history of an employee.
type AssignmentLog struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// Label renders the log line as "{timestamp}: {message}".
func (l AssignmentLog) Label() string {
	return fmt.Sprintf("%s: %s", l.Timestamp, l.Message)
}
