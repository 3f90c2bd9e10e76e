package devapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/okian/staffboard/internal/domain/model"
)

// Response wording.
const (
	msgSkillAdded         = "Skill added successfully!"
	msgProjectAdded       = "Project added successfully!"
	msgTaskCompleted      = "Task marked as completed!"
	msgMilestoneCompleted = "Milestone marked as completed!"

	msgInvalidJSON      = "Invalid JSON body"
	msgEmptySkill       = "Skill cannot be empty"
	msgMissingProject   = "Missing project_id or description"
	msgDuplicateProject = "Project ID already exists!"
	msgEmployeeNotFound = "Employee not found"
	msgTaskNotFound     = "Task not found"
	msgMilestoneMissing = "Milestone not found"
)

func (a *API) handleEmployeeSkills(w http.ResponseWriter, r *http.Request) {
	a.writeSkills(w, r, "devapi.employee_skills", a.sessionEmployee)
}

func (a *API) handleSkillsFor(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.skills_for"
	id, err := pathInt(r, "employee_id")
	if err != nil {
		a.writeError(w, r, op, err)
		return
	}
	a.writeSkills(w, r, op, id)
}

func (a *API) writeSkills(w http.ResponseWriter, r *http.Request, op string, employeeID int) {
	skills, err := a.store.Skills(r.Context(), employeeID)
	if err != nil {
		a.writeError(w, r, op, withMessage(msgEmployeeNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, model.SkillsResponse{Skills: skills})
}

func (a *API) handleAddEmployeeSkill(w http.ResponseWriter, r *http.Request) {
	a.addSkill(w, r, "devapi.add_employee_skill")
}

func (a *API) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	a.addSkill(w, r, "devapi.add_skill")
}

// addSkill serves both skill endpoints; each acts on the session employee.
func (a *API) addSkill(w http.ResponseWriter, r *http.Request, op string) {
	var req model.SkillRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, op, err)
		return
	}
	if err := req.Validate(); err != nil {
		a.writeError(w, r, op, withMessage(msgEmptySkill, err))
		return
	}
	if err := a.store.AddSkill(r.Context(), a.sessionEmployee, req.Skill); err != nil {
		a.writeError(w, r, op, withMessage(msgEmployeeNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msgSkillAdded})
}

func (a *API) handleEmployeeProjects(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.employee_projects"
	projects, err := a.store.ProjectsFor(r.Context(), a.sessionEmployee)
	if err != nil {
		a.writeError(w, r, op, withMessage(msgEmployeeNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, model.ProjectsEnvelope{Projects: projects})
}

func (a *API) handleProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Projects(r.Context()))
}

func (a *API) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.create_project"
	var req model.ProjectRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, op, err)
		return
	}
	if err := req.Validate(); err != nil {
		a.writeError(w, r, op, withMessage(msgMissingProject, err))
		return
	}
	p := model.Project{ProjectID: req.ProjectID, Description: req.Description}
	if err := a.store.AddProject(r.Context(), p); err != nil {
		a.writeError(w, r, op, withMessage(msgDuplicateProject, err))
		return
	}
	writeJSON(w, http.StatusCreated, model.MessageResponse{Message: msgProjectAdded, ProjectID: p.ProjectID})
}

func (a *API) handleProjectsFor(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.projects_for"
	id, err := pathInt(r, "employee_id")
	if err != nil {
		a.writeError(w, r, op, err)
		return
	}
	projects, err := a.store.ProjectsFor(r.Context(), id)
	if err != nil {
		a.writeError(w, r, op, withMessage(msgEmployeeNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (a *API) handleTasks(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.tasks"
	id, err := pathInt(r, "employee_id")
	if err != nil {
		a.writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a.store.Tasks(r.Context(), mux.Vars(r)["project_id"], id))
}

func (a *API) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.complete_task"
	id, err := pathInt(r, "task_id")
	if err != nil {
		a.writeError(w, r, op, err)
		return
	}
	if _, err := a.store.CompleteTask(r.Context(), id); err != nil {
		a.writeError(w, r, op, withMessage(msgTaskNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msgTaskCompleted})
}

func (a *API) handleEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Employees(r.Context()))
}

func (a *API) handleAssignmentLogs(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.assignment_logs"
	id, err := pathInt(r, "employee_id")
	if err != nil {
		a.writeError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AssignmentLogsResponse{Logs: a.store.AssignmentLogs(r.Context(), id)})
}

func (a *API) handleCompleteMilestone(w http.ResponseWriter, r *http.Request) {
	const op = "devapi.complete_milestone"
	id, err := pathInt(r, "milestone_id")
	if err != nil {
		a.writeError(w, r, op, err)
		return
	}
	if err := a.store.CompleteMilestone(r.Context(), id); err != nil {
		a.writeError(w, r, op, withMessage(msgMilestoneMissing, err))
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msgMilestoneCompleted})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return withMessage(msgInvalidJSON, fmt.Errorf("%w: %w", ErrBadRequest, err))
	}
	return nil
}

func pathInt(r *http.Request, key string) (int, error) {
	raw := mux.Vars(r)[key]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadRequest, key, raw)
	}
	return n, nil
}
