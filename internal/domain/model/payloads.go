package model

import (
	"fmt"
	"strings"
)

// Request bodies.

// SkillRequest is the body of POST /api/employee/skills and POST /api/add_skill.
type SkillRequest struct {
	Skill string `json:"skill"`
}

// Validate rejects empty and whitespace-only skills.
func (r SkillRequest) Validate() error {
	if strings.TrimSpace(r.Skill) == "" {
		return ErrEmptySkill
	}
	return nil
}

// ProjectRequest is the body of POST /api/projects.
type ProjectRequest struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
}

// Validate rejects a request missing either field.
func (r ProjectRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.ProjectID) == "":
		return fmt.Errorf("%w: missing project_id", ErrInvalidRequest)
	case strings.TrimSpace(r.Description) == "":
		return fmt.Errorf("%w: missing description", ErrInvalidRequest)
	}
	return nil
}

// Response bodies.

// MessageResponse is the success envelope of every mutation endpoint.
// POST /api/projects additionally echoes the created project id.
type MessageResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"project_id,omitempty"`
}

// ErrorResponse is the failure envelope the backend returns with 4xx codes.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SkillsResponse is returned by GET /api/employee/skills and GET /api/skills/{id}.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// Validate requires the skills array to be present.
func (r SkillsResponse) Validate() error {
	if r.Skills == nil {
		return fmt.Errorf("%w: skills array missing", ErrMalformed)
	}
	return nil
}

// ProjectsEnvelope is returned by GET /api/employee/projects.
type ProjectsEnvelope struct {
	Projects []Project `json:"projects"`
}

// Validate requires the projects array and well-formed entries.
func (r ProjectsEnvelope) Validate() error {
	if r.Projects == nil {
		return fmt.Errorf("%w: projects array missing", ErrMalformed)
	}
	return ValidateProjects(r.Projects)
}

// ValidateProjects checks every project of a bare array response.
func ValidateProjects(projects []Project) error {
	if projects == nil {
		return fmt.Errorf("%w: expected a projects array", ErrMalformed)
	}
	for _, p := range projects {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTasks checks every task of GET /api/tasks/{projectId}/{employeeId}.
func ValidateTasks(tasks []Task) error {
	if tasks == nil {
		return fmt.Errorf("%w: expected a tasks array", ErrMalformed)
	}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEmployees checks the GET /api/employees array.
func ValidateEmployees(employees []Employee) error {
	if employees == nil {
		return fmt.Errorf("%w: expected an employees array", ErrMalformed)
	}
	return nil
}

// AssignmentLogsResponse is returned by GET /api/assignment_logs/{employeeId}.
type AssignmentLogsResponse struct {
	Logs []AssignmentLog `json:"logs"`
}

// Validate requires the logs array to be present.
func (r AssignmentLogsResponse) Validate() error {
	if r.Logs == nil {
		return fmt.Errorf("%w: logs array missing", ErrMalformed)
	}
	return nil
}
