package viewsync

import (
	"net/url"
	"strconv"

	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/domain/model"
	"github.com/okian/staffboard/pkg/metrics"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderList clears container and appends one row per item, in order.
// Rendering the same items twice yields the same markup.
func RenderList[T any](doc *dom.Document, container string, items []T, toRow func(T) *html.Node) error {
	rows := make([]*html.Node, 0, len(items))
	for _, it := range items {
		rows = append(rows, toRow(it))
	}
	if err := doc.ReplaceChildren(container, rows); err != nil {
		return err
	}
	metrics.RecordContainerRender(container, len(rows))
	return nil
}

func textRow(s string) *html.Node { return dom.Item(s) }

func projectRow(p model.Project) *html.Node { return dom.Item(p.Label()) }

func employeeRow(e model.Employee) *html.Node { return dom.Item(e.Label()) }

func logRow(l model.AssignmentLog) *html.Node { return dom.Item(l.Label()) }

// projectLinkRow renders <li><a href="/employee_tasks/{id}">description</a></li>.
func projectLinkRow(p model.Project) *html.Node {
	link := dom.Element(atom.A,
		[]html.Attribute{dom.Attr("href", TasksPath(p.ProjectID))},
		dom.Text(p.Description))
	return dom.Element(atom.Li, nil, link)
}

// TasksPath is the page listing an employee's tasks in a project.
func TasksPath(projectID string) string {
	return "/employee_tasks/" + url.PathEscape(projectID)
}

// taskRow renders the task name followed by a "Complete" control posting to action.
func taskRow(t model.Task, action string) *html.Node {
	button := dom.Element(atom.Button,
		[]html.Attribute{dom.Attr("type", "submit")},
		dom.Text("Complete"))
	form := dom.Element(atom.Form,
		[]html.Attribute{
			dom.Attr("method", "post"),
			dom.Attr("action", action),
			dom.Attr("class", "inline"),
		},
		button)
	return dom.Element(atom.Li,
		[]html.Attribute{dom.Attr("data-task-id", strconv.Itoa(t.ID))},
		dom.Text(t.Name+" "), form)
}
