package viewsync

import (
	"context"

	"github.com/okian/staffboard/internal/dom"
)

// ListEmployees fills #employee-list with "{id} - {name}" rows.
func (v *ViewSync) ListEmployees(ctx context.Context, doc *dom.Document, _ Session) error {
	const op = "list_employees"
	employees, err := v.backend.Employees(ctx)
	if err != nil {
		return v.fail(ctx, op, err)
	}
	if err := RenderList(doc, EmployeeListID, employees, employeeRow); err != nil {
		return v.fail(ctx, op, err)
	}
	return nil
}

// ListAssignmentLogs fills #assignment-logs with "{timestamp}: {message}"
// rows, newest first as the backend returns them.
func (v *ViewSync) ListAssignmentLogs(ctx context.Context, doc *dom.Document, s Session) error {
	const op = "list_assignment_logs"
	logs, err := v.backend.AssignmentLogs(ctx, s.EmployeeID)
	if err != nil {
		return v.fail(ctx, op, err)
	}
	if err := RenderList(doc, AssignmentLogsID, logs, logRow); err != nil {
		return v.fail(ctx, op, err)
	}
	return nil
}
