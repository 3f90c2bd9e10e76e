package viewsync

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/domain/model"
	"golang.org/x/net/html"
)

// ProjectFromLocation returns the last path segment of the document URL,
// unescaped. The segment is cut from the escaped path so an id holding an
// encoded slash stays whole.
func ProjectFromLocation(doc *dom.Document) string {
	p := doc.Location().EscapedPath()
	seg := p[strings.LastIndex(p, "/")+1:]
	if id, err := url.PathUnescape(seg); err == nil {
		return id
	}
	return seg
}

// ListTasks fills #tasks-list with the session employee's tasks in the
// project named by the page URL. Each row carries a "Complete" control.
func (v *ViewSync) ListTasks(ctx context.Context, doc *dom.Document, s Session) error {
	const op = "list_tasks"
	projectID := ProjectFromLocation(doc)
	if projectID == "" {
		return v.fail(ctx, op, fmt.Errorf("%w: %s", ErrNoProject, doc.Location().Path))
	}

	tasks, err := v.backend.Tasks(ctx, projectID, s.EmployeeID)
	if err != nil {
		return v.fail(ctx, op, err)
	}
	pagePath := TasksPath(projectID)
	toRow := func(t model.Task) *html.Node {
		return taskRow(t, v.taskAction(pagePath, t.ID))
	}
	if err := RenderList(doc, TasksListID, tasks, toRow); err != nil {
		return v.fail(ctx, op, err)
	}
	return nil
}

// CompleteTask posts /api/complete_task/{taskId} without a body, alerts the
// returned message and reloads the page.
func (v *ViewSync) CompleteTask(ctx context.Context, doc *dom.Document, _ Session, taskID int) error {
	resp, err := v.backend.CompleteTask(ctx, taskID)
	if err != nil {
		return v.fail(ctx, "complete_task", err)
	}
	doc.Alert(resp.Message)
	doc.Reload()
	return nil
}

// CompleteMilestone posts /api/milestone_complete/{milestoneId}, alerts the
// returned message and reloads the page.
func (v *ViewSync) CompleteMilestone(ctx context.Context, doc *dom.Document, _ Session, milestoneID int) error {
	resp, err := v.backend.CompleteMilestone(ctx, milestoneID)
	if err != nil {
		return v.fail(ctx, "complete_milestone", err)
	}
	doc.Alert(resp.Message)
	doc.Reload()
	return nil
}
