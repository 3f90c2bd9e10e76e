package viewsync

import (
	"context"

	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/domain/model"
	"golang.org/x/net/html"
)

// ProjectSource binds one project listing endpoint to a container and a row shape.
type ProjectSource struct {
	Op        string
	Container string
	Fetch     func(ctx context.Context, s Session) ([]model.Project, error)
	Row       func(model.Project) *html.Node
}

// AssignedProjects lists GET /api/employee/projects into #assigned-projects.
func (v *ViewSync) AssignedProjects() ProjectSource {
	return ProjectSource{
		Op:        "list_assigned_projects",
		Container: AssignedProjectsID,
		Fetch: func(ctx context.Context, _ Session) ([]model.Project, error) {
			return v.backend.AssignedProjects(ctx)
		},
		Row: projectRow,
	}
}

// AllProjects lists GET /api/projects into #project-list.
func (v *ViewSync) AllProjects() ProjectSource {
	return ProjectSource{
		Op:        "list_projects",
		Container: ProjectListID,
		Fetch: func(ctx context.Context, _ Session) ([]model.Project, error) {
			return v.backend.Projects(ctx)
		},
		Row: projectRow,
	}
}

// ProjectLinks lists GET /api/projects/{employeeId} into #projects-list as
// links to each project's task page.
func (v *ViewSync) ProjectLinks() ProjectSource {
	return ProjectSource{
		Op:        "list_employee_project_links",
		Container: ProjectsListID,
		Fetch: func(ctx context.Context, s Session) ([]model.Project, error) {
			return v.backend.ProjectsFor(ctx, s.EmployeeID)
		},
		Row: projectLinkRow,
	}
}

// ListProjectsFrom renders src into its container.
func (v *ViewSync) ListProjectsFrom(ctx context.Context, doc *dom.Document, s Session, src ProjectSource) error {
	projects, err := src.Fetch(ctx, s)
	if err != nil {
		return v.fail(ctx, src.Op, err)
	}
	if err := RenderList(doc, src.Container, projects, src.Row); err != nil {
		return v.fail(ctx, src.Op, err)
	}
	return nil
}

// ListAssignedProjects fills #assigned-projects with "{project_id} - {description}" rows.
func (v *ViewSync) ListAssignedProjects(ctx context.Context, doc *dom.Document, s Session) error {
	return v.ListProjectsFrom(ctx, doc, s, v.AssignedProjects())
}

// ListProjects fills #project-list with every project.
func (v *ViewSync) ListProjects(ctx context.Context, doc *dom.Document, s Session) error {
	return v.ListProjectsFrom(ctx, doc, s, v.AllProjects())
}

// ListEmployeeProjectLinks fills #projects-list with links to task pages.
func (v *ViewSync) ListEmployeeProjectLinks(ctx context.Context, doc *dom.Document, s Session) error {
	return v.ListProjectsFrom(ctx, doc, s, v.ProjectLinks())
}

// CreateProject posts the project form fields, writes the returned message
// into #message and refreshes #project-list.
func (v *ViewSync) CreateProject(ctx context.Context, doc *dom.Document, s Session) error {
	const op = "create_project"
	req := model.ProjectRequest{
		ProjectID:   doc.Value(ProjectIDFieldID),
		Description: doc.Value(DescriptionFieldID),
	}
	resp, err := v.backend.CreateProject(ctx, req)
	if err != nil {
		return v.fail(ctx, op, err)
	}
	if err := doc.SetText(MessageID, resp.Message); err != nil {
		return v.fail(ctx, op, err)
	}
	return v.ListProjects(ctx, doc, s)
}
