package viewsync_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/okian/staffboard/internal/adapters/backend"
	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/domain/model"
	"github.com/okian/staffboard/internal/viewsync"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/net/html"
)

const dashboard = `<!doctype html><html><body>
<div id="alerts"></div>
<ul id="skill-list"><li>stale</li></ul>
<input id="new-skill" type="text">
<ul id="assigned-projects"></ul>
<ul id="skills-list"></ul>
<form id="add-skill-form"><input id="add-skill-input" type="text"></form>
<ul id="projects-list"></ul>
<ul id="assignment-logs"></ul>
<form id="project-form"><input id="project_id"><input id="description"></form>
<p id="message"></p>
<ul id="project-list"></ul>
<ul id="employee-list"></ul>
<ul id="tasks-list"></ul>
</body></html>`

var errDown = backend.WrapKind("test", backend.ErrTransport, errors.New("connection refused"))

// fakeBackend answers from canned data and counts calls per operation.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string][]any

	skills    []string
	projects  []model.Project
	tasks     []model.Task
	employees []model.Employee
	logs      []model.AssignmentLog
	message   string
	err       error
}

func newFake() *fakeBackend {
	return &fakeBackend{
		calls:     map[string][]any{},
		skills:    []string{"Go", "SQL"},
		projects:  []model.Project{{ProjectID: "P1", Description: "Infra"}},
		tasks:     []model.Task{{ID: 42, Name: "Deploy"}},
		employees: []model.Employee{{ID: 1, Name: "Alice"}},
		logs:      []model.AssignmentLog{{Timestamp: "2025-03-04 10:30:00", Message: "Assigned to project P1"}},
		message:   "ok!",
	}
}

func (f *fakeBackend) record(op string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op] = append(f.calls[op], args)
	return f.err
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls[op])
}

func (f *fakeBackend) args(op string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.calls[op]
	return c[len(c)-1].([]any)
}

func (f *fakeBackend) EmployeeSkills(context.Context) ([]string, error) {
	return f.skills, f.record("EmployeeSkills")
}

func (f *fakeBackend) AddEmployeeSkill(_ context.Context, skill string) (model.MessageResponse, error) {
	return model.MessageResponse{Message: f.message}, f.record("AddEmployeeSkill", skill)
}

func (f *fakeBackend) SkillsFor(_ context.Context, id int) ([]string, error) {
	return f.skills, f.record("SkillsFor", id)
}

func (f *fakeBackend) AddSkill(_ context.Context, skill string) (model.MessageResponse, error) {
	return model.MessageResponse{Message: f.message}, f.record("AddSkill", skill)
}

func (f *fakeBackend) AssignedProjects(context.Context) ([]model.Project, error) {
	return f.projects, f.record("AssignedProjects")
}

func (f *fakeBackend) Projects(context.Context) ([]model.Project, error) {
	return f.projects, f.record("Projects")
}

func (f *fakeBackend) CreateProject(_ context.Context, req model.ProjectRequest) (model.MessageResponse, error) {
	return model.MessageResponse{Message: f.message, ProjectID: req.ProjectID}, f.record("CreateProject", req)
}

func (f *fakeBackend) ProjectsFor(_ context.Context, id int) ([]model.Project, error) {
	return f.projects, f.record("ProjectsFor", id)
}

func (f *fakeBackend) Tasks(_ context.Context, projectID string, employeeID int) ([]model.Task, error) {
	return f.tasks, f.record("Tasks", projectID, employeeID)
}

func (f *fakeBackend) CompleteTask(_ context.Context, id int) (model.MessageResponse, error) {
	return model.MessageResponse{Message: f.message}, f.record("CompleteTask", id)
}

func (f *fakeBackend) Employees(context.Context) ([]model.Employee, error) {
	return f.employees, f.record("Employees")
}

func (f *fakeBackend) AssignmentLogs(_ context.Context, id int) ([]model.AssignmentLog, error) {
	return f.logs, f.record("AssignmentLogs", id)
}

func (f *fakeBackend) CompleteMilestone(_ context.Context, id int) (model.MessageResponse, error) {
	return model.MessageResponse{Message: f.message}, f.record("CompleteMilestone", id)
}

func parsePage(location string) *dom.Document {
	doc, err := dom.Parse(strings.NewReader(dashboard), location)
	So(err, ShouldBeNil)
	return doc
}

func items(doc *dom.Document, id string) []string {
	got, err := doc.Items(id)
	So(err, ShouldBeNil)
	return got
}

var session = viewsync.Session{EmployeeID: 1}

func TestSkills(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with skills Go and SQL", t, func() {
		fake := newFake()
		vs := viewsync.New(fake)
		doc := parsePage("/employee_dashboard")

		Convey("When listing employee skills", func() {
			err := vs.ListEmployeeSkills(ctx, doc, session)

			Convey("Then the list holds exactly Go and SQL in order", func() {
				So(err, ShouldBeNil)
				So(items(doc, viewsync.SkillListID), ShouldResemble, []string{"Go", "SQL"})
			})
		})

		Convey("When adding a non-empty skill", func() {
			So(doc.SetValue(viewsync.NewSkillID, " Rust "), ShouldBeNil)
			err := vs.AddEmployeeSkill(ctx, doc, session)

			Convey("Then one POST carries the exact string and the list is re-fetched", func() {
				So(err, ShouldBeNil)
				So(fake.count("AddEmployeeSkill"), ShouldEqual, 1)
				So(fake.args("AddEmployeeSkill"), ShouldResemble, []any{" Rust "})
				So(fake.count("EmployeeSkills"), ShouldEqual, 1)
				So(doc.Alerts(), ShouldResemble, []string{"ok!"})
				So(doc.ReloadRequested(), ShouldBeFalse)
			})
		})

		Convey("When adding a whitespace-only skill", func() {
			for _, input := range []string{"", "   ", "\t\n"} {
				d := parsePage("/employee_dashboard")
				So(d.SetValue(viewsync.NewSkillID, input), ShouldBeNil)
				err := vs.AddEmployeeSkill(ctx, d, session)
				So(errors.Is(err, viewsync.ErrEmptySkill), ShouldBeTrue)
				So(d.Alerts(), ShouldResemble, []string{viewsync.EmptySkillAlert})
			}

			Convey("Then no network call is made", func() {
				So(fake.count("AddEmployeeSkill"), ShouldEqual, 0)
				So(fake.count("EmployeeSkills"), ShouldEqual, 0)
			})
		})

		Convey("When listing through the alternate endpoint", func() {
			err := vs.ListSkills(ctx, doc, viewsync.Session{EmployeeID: 7})

			Convey("Then the session id is used and #skills-list is filled", func() {
				So(err, ShouldBeNil)
				So(fake.args("SkillsFor"), ShouldResemble, []any{7})
				So(items(doc, viewsync.SkillsListID), ShouldResemble, []string{"Go", "SQL"})
				So(items(doc, viewsync.SkillListID), ShouldResemble, []string{"stale"})
			})
		})

		Convey("When adding through the alternate form", func() {
			So(doc.SetValue(viewsync.AddSkillInputID, "Kotlin"), ShouldBeNil)
			err := vs.AddSkill(ctx, doc, session)

			Convey("Then the message is alerted and the page reloads", func() {
				So(err, ShouldBeNil)
				So(fake.args("AddSkill"), ShouldResemble, []any{"Kotlin"})
				So(doc.Alerts(), ShouldResemble, []string{"ok!"})
				So(doc.ReloadRequested(), ShouldBeTrue)
				So(fake.count("SkillsFor"), ShouldEqual, 0)
			})
		})

		Convey("When the alternate form is blank", func() {
			err := vs.AddSkill(ctx, doc, session)
			So(errors.Is(err, viewsync.ErrEmptySkill), ShouldBeTrue)
			So(fake.count("AddSkill"), ShouldEqual, 0)
			So(doc.ReloadRequested(), ShouldBeFalse)
		})
	})
}

func TestProjects(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend with project P1", t, func() {
		fake := newFake()
		vs := viewsync.New(fake)
		doc := parsePage("/projects")

		Convey("When listing all and assigned projects", func() {
			So(vs.ListProjects(ctx, doc, session), ShouldBeNil)
			So(vs.ListAssignedProjects(ctx, doc, session), ShouldBeNil)

			Convey("Then each row reads P1 - Infra", func() {
				So(items(doc, viewsync.ProjectListID), ShouldResemble, []string{"P1 - Infra"})
				So(items(doc, viewsync.AssignedProjectsID), ShouldResemble, []string{"P1 - Infra"})
			})
		})

		Convey("When listing project links", func() {
			So(vs.ListEmployeeProjectLinks(ctx, doc, session), ShouldBeNil)

			Convey("Then each row links to the task page", func() {
				So(items(doc, viewsync.ProjectsListID), ShouldResemble, []string{"Infra"})
				So(doc.String(), ShouldContainSubstring, `<a href="/employee_tasks/P1">Infra</a>`)
			})
		})

		Convey("When the project form is submitted", func() {
			So(doc.SetValue(viewsync.ProjectIDFieldID, "P9"), ShouldBeNil)
			So(doc.SetValue(viewsync.DescriptionFieldID, "Search"), ShouldBeNil)
			err := vs.CreateProject(ctx, doc, session)

			Convey("Then one POST carries both values and the message is shown", func() {
				So(err, ShouldBeNil)
				So(fake.count("CreateProject"), ShouldEqual, 1)
				So(fake.args("CreateProject"), ShouldResemble, []any{model.ProjectRequest{ProjectID: "P9", Description: "Search"}})
				text, err := doc.TextContent(viewsync.MessageID)
				So(err, ShouldBeNil)
				So(text, ShouldEqual, "ok!")
				So(fake.count("Projects"), ShouldEqual, 1)
				So(doc.ReloadRequested(), ShouldBeFalse)
			})
		})
	})
}

func TestTasks(t *testing.T) {
	ctx := context.Background()

	Convey("Given a task page for project P1", t, func() {
		fake := newFake()
		vs := viewsync.New(fake)
		doc := parsePage("/employee_tasks/P1")

		Convey("When listing tasks", func() {
			err := vs.ListTasks(ctx, doc, session)

			Convey("Then the project id comes from the URL", func() {
				So(err, ShouldBeNil)
				So(fake.args("Tasks"), ShouldResemble, []any{"P1", 1})
				So(items(doc, viewsync.TasksListID), ShouldResemble, []string{"Deploy Complete"})
				So(doc.String(), ShouldContainSubstring, `action="/employee_tasks/P1/complete/42"`)
			})
		})

		Convey("When a custom task action is configured", func() {
			vs := viewsync.New(fake, viewsync.WithTaskAction(func(page string, id int) string {
				return fmt.Sprintf("/tasks/%d/done?from=%s", id, page)
			}))
			So(vs.ListTasks(ctx, doc, session), ShouldBeNil)
			So(doc.String(), ShouldContainSubstring, `action="/tasks/42/done?from=/employee_tasks/P1"`)
		})

		Convey("When completing task 42", func() {
			err := vs.CompleteTask(ctx, doc, session, 42)

			Convey("Then exactly one completion is sent and the page reloads", func() {
				So(err, ShouldBeNil)
				So(fake.count("CompleteTask"), ShouldEqual, 1)
				So(fake.args("CompleteTask"), ShouldResemble, []any{42})
				So(doc.Alerts(), ShouldResemble, []string{"ok!"})
				So(doc.ReloadRequested(), ShouldBeTrue)
			})
		})

		Convey("When completing a milestone", func() {
			So(vs.CompleteMilestone(ctx, doc, session, 3), ShouldBeNil)
			So(fake.args("CompleteMilestone"), ShouldResemble, []any{3})
			So(doc.ReloadRequested(), ShouldBeTrue)
		})
	})

	Convey("Given a task page for a project id that needs escaping", t, func() {
		fake := newFake()
		doc := parsePage(viewsync.TasksPath("a?b"))

		Convey("When listing tasks", func() {
			So(viewsync.New(fake).ListTasks(ctx, doc, session), ShouldBeNil)

			Convey("Then the id is unescaped for the call and escaped in the form action", func() {
				So(fake.args("Tasks"), ShouldResemble, []any{"a?b", 1})
				So(doc.String(), ShouldContainSubstring, `action="/employee_tasks/a%3Fb/complete/42"`)

				action, err := url.Parse("/employee_tasks/a%3Fb/complete/42")
				So(err, ShouldBeNil)
				So(action.RawQuery, ShouldBeEmpty)
				So(action.Path, ShouldEqual, "/employee_tasks/a?b/complete/42")
			})
		})
	})

	Convey("Given a task page for a project id holding a slash", t, func() {
		fake := newFake()
		doc := parsePage(viewsync.TasksPath("ops/infra"))

		So(viewsync.New(fake).ListTasks(ctx, doc, session), ShouldBeNil)
		So(fake.args("Tasks"), ShouldResemble, []any{"ops/infra", 1})
		So(doc.String(), ShouldContainSubstring, `action="/employee_tasks/ops%2Finfra/complete/42"`)
	})

	Convey("Given a page URL without a project segment", t, func() {
		fake := newFake()
		doc := parsePage("/employee_tasks/")

		err := viewsync.New(fake).ListTasks(ctx, doc, session)
		So(errors.Is(err, viewsync.ErrNoProject), ShouldBeTrue)
		So(fake.count("Tasks"), ShouldEqual, 0)
	})
}

func TestFailuresKeepContent(t *testing.T) {
	ctx := context.Background()

	Convey("Given an unreachable backend", t, func() {
		fake := newFake()
		fake.err = errDown
		vs := viewsync.New(fake)
		doc := parsePage("/employee_dashboard")

		Convey("When the dashboard loads", func() {
			err := vs.LoadEmployeeDashboard(ctx, doc, session)

			Convey("Then every fetch fails but the page is intact", func() {
				So(errors.Is(err, backend.ErrTransport), ShouldBeTrue)
				So(items(doc, viewsync.SkillListID), ShouldResemble, []string{"stale"})
				So(doc.Alerts(), ShouldBeEmpty)
			})
		})

		Convey("When a skill is added", func() {
			So(doc.SetValue(viewsync.NewSkillID, "Go"), ShouldBeNil)
			err := vs.AddEmployeeSkill(ctx, doc, session)

			Convey("Then nothing is alerted and the list is not re-fetched", func() {
				So(errors.Is(err, backend.ErrTransport), ShouldBeTrue)
				So(doc.Alerts(), ShouldBeEmpty)
				So(fake.count("EmployeeSkills"), ShouldEqual, 0)
			})
		})

		Convey("When a task completion fails", func() {
			err := vs.CompleteTask(ctx, doc, session, 1)
			So(err, ShouldNotBeNil)
			So(doc.ReloadRequested(), ShouldBeFalse)
		})
	})

	Convey("Given a page missing a container", t, func() {
		doc, err := dom.Parse(strings.NewReader(`<html><body></body></html>`), "/")
		So(err, ShouldBeNil)

		err = viewsync.New(newFake()).ListEmployeeSkills(ctx, doc, session)
		So(errors.Is(err, dom.ErrNoElement), ShouldBeTrue)
	})
}

func TestPageLoaders(t *testing.T) {
	ctx := context.Background()

	Convey("Given a healthy backend", t, func() {
		fake := newFake()
		vs := viewsync.New(fake)

		Convey("When the dashboard loads", func() {
			doc := parsePage("/employee_dashboard")
			So(vs.LoadEmployeeDashboard(ctx, doc, session), ShouldBeNil)

			Convey("Then every dashboard container is filled", func() {
				So(items(doc, viewsync.SkillListID), ShouldResemble, []string{"Go", "SQL"})
				So(items(doc, viewsync.AssignedProjectsID), ShouldResemble, []string{"P1 - Infra"})
				So(items(doc, viewsync.SkillsListID), ShouldResemble, []string{"Go", "SQL"})
				So(items(doc, viewsync.ProjectsListID), ShouldResemble, []string{"Infra"})
				So(items(doc, viewsync.AssignmentLogsID), ShouldResemble, []string{"2025-03-04 10:30:00: Assigned to project P1"})
			})
		})

		Convey("When the projects page loads", func() {
			doc := parsePage("/projects")
			So(vs.LoadProjectsPage(ctx, doc, session), ShouldBeNil)
			So(items(doc, viewsync.ProjectListID), ShouldResemble, []string{"P1 - Infra"})
			So(items(doc, viewsync.EmployeeListID), ShouldResemble, []string{"1 - Alice"})
		})

		Convey("When the dashboard loads after an action refreshed the skill list", func() {
			doc := parsePage("/employee_dashboard")
			So(vs.LoadEmployeeDashboard(ctx, doc, session, viewsync.SkillListID), ShouldBeNil)

			Convey("Then that container is neither fetched nor touched", func() {
				So(fake.count("EmployeeSkills"), ShouldEqual, 0)
				So(items(doc, viewsync.SkillListID), ShouldResemble, []string{"stale"})
				So(fake.count("AssignedProjects"), ShouldEqual, 1)
				So(fake.count("SkillsFor"), ShouldEqual, 1)
			})
		})

		Convey("When the projects page loads after a project was created", func() {
			doc := parsePage("/projects")
			So(vs.LoadProjectsPage(ctx, doc, session, viewsync.ProjectListID), ShouldBeNil)
			So(fake.count("Projects"), ShouldEqual, 0)
			So(fake.count("Employees"), ShouldEqual, 1)
		})

		Convey("When the same data is loaded twice", func() {
			first := parsePage("/employee_tasks/P1")
			second := parsePage("/employee_tasks/P1")
			So(vs.LoadTasksPage(ctx, first, session), ShouldBeNil)
			So(vs.LoadTasksPage(ctx, second, session), ShouldBeNil)
			So(vs.LoadTasksPage(ctx, second, session), ShouldBeNil)

			Convey("Then the rendered documents are identical", func() {
				So(second.String(), ShouldEqual, first.String())
			})
		})
	})
}

func TestRenderList(t *testing.T) {
	Convey("Given a container", t, func() {
		doc := parsePage("/")

		Convey("When rendering an empty list", func() {
			err := viewsync.RenderList(doc, viewsync.SkillListID, []string{}, func(s string) *html.Node { return dom.Item(s) })

			Convey("Then the container is cleared", func() {
				So(err, ShouldBeNil)
				So(items(doc, viewsync.SkillListID), ShouldBeEmpty)
			})
		})
	})
}
