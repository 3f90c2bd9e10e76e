package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/staffboard/internal/domain/model"
)

// Operation names, used as metric labels and in error messages.
const (
	OpEmployeeSkills    = "employee_skills"
	OpAddEmployeeSkill  = "add_employee_skill"
	OpSkillsFor         = "skills_for"
	OpAddSkill          = "add_skill"
	OpAssignedProjects  = "assigned_projects"
	OpProjects          = "projects"
	OpCreateProject     = "create_project"
	OpProjectsFor       = "projects_for"
	OpTasks             = "tasks"
	OpCompleteTask      = "complete_task"
	OpEmployees         = "employees"
	OpAssignmentLogs    = "assignment_logs"
	OpCompleteMilestone = "complete_milestone"
)

// EmployeeSkills calls GET /api/employee/skills.
func (c *Client) EmployeeSkills(ctx context.Context) ([]string, error) {
	var resp model.SkillsResponse
	if err := c.do(ctx, OpEmployeeSkills, http.MethodGet, c.endpoint("api", "employee", "skills"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// AddEmployeeSkill calls POST /api/employee/skills with {skill}.
func (c *Client) AddEmployeeSkill(ctx context.Context, skill string) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.do(ctx, OpAddEmployeeSkill, http.MethodPost, c.endpoint("api", "employee", "skills"),
		model.SkillRequest{Skill: skill}, &resp)
	return resp, err
}

// SkillsFor calls GET /api/skills/{employeeId}.
func (c *Client) SkillsFor(ctx context.Context, employeeID int) ([]string, error) {
	var resp model.SkillsResponse
	if err := c.do(ctx, OpSkillsFor, http.MethodGet, c.endpoint("api", "skills", strconv.Itoa(employeeID)), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

// AddSkill calls POST /api/add_skill with {skill}.
func (c *Client) AddSkill(ctx context.Context, skill string) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.do(ctx, OpAddSkill, http.MethodPost, c.endpoint("api", "add_skill"), model.SkillRequest{Skill: skill}, &resp)
	return resp, err
}

// AssignedProjects calls GET /api/employee/projects, which wraps the list in {projects}.
func (c *Client) AssignedProjects(ctx context.Context) ([]model.Project, error) {
	var resp model.ProjectsEnvelope
	if err := c.do(ctx, OpAssignedProjects, http.MethodGet, c.endpoint("api", "employee", "projects"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// Projects calls GET /api/projects, which returns a bare array.
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	return c.projectArray(ctx, OpProjects, c.endpoint("api", "projects"))
}

// CreateProject calls POST /api/projects with {project_id, description}.
func (c *Client) CreateProject(ctx context.Context, req model.ProjectRequest) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.do(ctx, OpCreateProject, http.MethodPost, c.endpoint("api", "projects"), req, &resp)
	return resp, err
}

// ProjectsFor calls GET /api/projects/{employeeId}, which returns a bare array.
func (c *Client) ProjectsFor(ctx context.Context, employeeID int) ([]model.Project, error) {
	return c.projectArray(ctx, OpProjectsFor, c.endpoint("api", "projects", strconv.Itoa(employeeID)))
}

func (c *Client) projectArray(ctx context.Context, op, target string) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, op, http.MethodGet, target, nil, &projects); err != nil {
		return nil, err
	}
	if err := model.ValidateProjects(projects); err != nil {
		return nil, WrapKind(op, ErrDecode, err)
	}
	return projects, nil
}

// Tasks calls GET /api/tasks/{projectId}/{employeeId}.
func (c *Client) Tasks(ctx context.Context, projectID string, employeeID int) ([]model.Task, error) {
	var tasks []model.Task
	target := c.endpoint("api", "tasks", projectID, strconv.Itoa(employeeID))
	if err := c.do(ctx, OpTasks, http.MethodGet, target, nil, &tasks); err != nil {
		return nil, err
	}
	if err := model.ValidateTasks(tasks); err != nil {
		return nil, WrapKind(OpTasks, ErrDecode, err)
	}
	return tasks, nil
}

// CompleteTask calls POST /api/complete_task/{taskId} with no body.
func (c *Client) CompleteTask(ctx context.Context, taskID int) (model.MessageResponse, error) {
	var resp model.MessageResponse
	err := c.do(ctx, OpCompleteTask, http.MethodPost, c.endpoint("api", "complete_task", strconv.Itoa(taskID)), nil, &resp)
	return resp, err
}

// Employees calls GET /api/employees.
func (c *Client) Employees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.do(ctx, OpEmployees, http.MethodGet, c.endpoint("api", "employees"), nil, &employees); err != nil {
		return nil, err
	}
	if err := model.ValidateEmployees(employees); err != nil {
		return nil, WrapKind(OpEmployees, ErrDecode, err)
	}
	return employees, nil
}

// AssignmentLogs calls GET /api/assignment_logs/{employeeId}.
func (c *Client) AssignmentLogs(ctx context.Context, employeeID int) ([]model.AssignmentLog, error) {
	var resp model.AssignmentLogsResponse
	target := c.endpoint("api", "assignment_logs", strconv.Itoa(employeeID))
	if err := c.do(ctx, OpAssignmentLogs, http.MethodGet, target, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// CompleteMilestone calls POST /api/milestone_complete/{milestoneId} with no body.
func (c *Client) CompleteMilestone(ctx context.Context, milestoneID int) (model.MessageResponse, error) {
	var resp model.MessageResponse
	target := c.endpoint("api", "milestone_complete", strconv.Itoa(milestoneID))
	err := c.do(ctx, OpCompleteMilestone, http.MethodPost, target, nil, &resp)
	return resp, err
}
