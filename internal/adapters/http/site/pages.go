package site

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/viewsync"
	"github.com/okian/staffboard/pkg/logger"
)

const (
	dashboardPath = "/employee_dashboard"
	projectsPath  = "/projects"

	// alertParam carries alerts across a reload redirect.
	alertParam = "alert"
)

type loader func(ctx context.Context, doc *dom.Document, s viewsync.Session, skip ...string) error

// open parses a page template bound to the request URL and queues any
// alerts carried over from a reload.
func (s *Server) open(r *http.Request, template string) (*dom.Document, error) {
	raw, err := pageTemplate(template)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(raw), r.URL.RequestURI())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	for _, msg := range r.URL.Query()[alertParam] {
		doc.Alert(msg)
	}
	return doc, nil
}

// serve runs the page loader, minus the containers in fresh, and renders the
// result. Loader failures are already logged by the view-sync and leave their
// containers untouched.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, doc *dom.Document, load loader, fresh ...string) {
	_ = load(r.Context(), doc, s.session, fresh...)
	s.render(w, r, doc)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, doc *dom.Document) {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		s.fail(w, r, http.StatusInternalServerError, fmt.Errorf("%w: %w", ErrServe, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// reload answers with 303 See Other back to path, carrying pending alerts.
func (s *Server) reload(w http.ResponseWriter, r *http.Request, path string, doc *dom.Document) {
	target := path
	if alerts := doc.Alerts(); len(alerts) > 0 {
		target += "?" + url.Values{alertParam: alerts}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error(r.Context(), "page request failed",
		logger.String("path", r.URL.Path),
		logger.String("request_id", RequestIDFrom(r.Context())),
		logger.Int("status", status),
		logger.Error(err))
	http.Error(w, http.StatusText(status), status)
}

// page opens template and reports failures to the client. ok is false when
// the response has already been written.
func (s *Server) page(w http.ResponseWriter, r *http.Request, template string) (*dom.Document, bool) {
	doc, err := s.open(r, template)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	return doc, true
}

// form parses the posted form; ok is false when the response has been written.
func (s *Server) form(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return false
	}
	return true
}

// fill copies posted form fields into the document inputs they came from.
func fill(doc *dom.Document, r *http.Request, fields map[string]string) {
	for id, name := range fields {
		_ = doc.SetValue(id, r.PostFormValue(name))
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if doc, ok := s.page(w, r, dashboardPage); ok {
		s.serve(w, r, doc, s.views.LoadEmployeeDashboard)
	}
}

func (s *Server) handleAddEmployeeSkill(w http.ResponseWriter, r *http.Request) {
	if !s.form(w, r) {
		return
	}
	doc, ok := s.page(w, r, dashboardPage)
	if !ok {
		return
	}
	fill(doc, r, map[string]string{viewsync.NewSkillID: "skill"})
	var fresh []string
	if err := s.views.AddEmployeeSkill(r.Context(), doc, s.session); err == nil {
		fresh = append(fresh, viewsync.SkillListID)
	}
	s.serve(w, r, doc, s.views.LoadEmployeeDashboard, fresh...)
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	if !s.form(w, r) {
		return
	}
	doc, ok := s.page(w, r, dashboardPage)
	if !ok {
		return
	}
	fill(doc, r, map[string]string{viewsync.AddSkillInputID: "skill"})
	_ = s.views.AddSkill(r.Context(), doc, s.session)
	if doc.ReloadRequested() {
		s.reload(w, r, dashboardPath, doc)
		return
	}
	s.serve(w, r, doc, s.views.LoadEmployeeDashboard)
}

func (s *Server) handleCompleteMilestone(w http.ResponseWriter, r *http.Request) {
	if !s.form(w, r) {
		return
	}
	raw, ok := mux.Vars(r)["milestone_id"]
	if !ok {
		raw = r.PostFormValue("milestone_id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("%w: milestone_id %q", ErrBadRequest, raw))
		return
	}
	doc, ok := s.page(w, r, dashboardPage)
	if !ok {
		return
	}
	_ = s.views.CompleteMilestone(r.Context(), doc, s.session, id)
	if doc.ReloadRequested() {
		s.reload(w, r, dashboardPath, doc)
		return
	}
	s.serve(w, r, doc, s.views.LoadEmployeeDashboard)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if doc, ok := s.page(w, r, projectsPage); ok {
		s.serve(w, r, doc, s.views.LoadProjectsPage)
	}
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if !s.form(w, r) {
		return
	}
	doc, ok := s.page(w, r, projectsPage)
	if !ok {
		return
	}
	fill(doc, r, map[string]string{
		viewsync.ProjectIDFieldID:   "project_id",
		viewsync.DescriptionFieldID: "description",
	})
	var fresh []string
	if err := s.views.CreateProject(r.Context(), doc, s.session); err == nil {
		fresh = append(fresh, viewsync.ProjectListID)
	}
	s.serve(w, r, doc, s.views.LoadProjectsPage, fresh...)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if doc, ok := s.page(w, r, tasksPage); ok {
		s.serve(w, r, doc, s.views.LoadTasksPage)
	}
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID, err := strconv.Atoi(vars["task_id"])
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("%w: task_id %q", ErrBadRequest, vars["task_id"]))
		return
	}
	page := viewsync.TasksPath(vars["project_id"])

	doc, ok := s.page(w, r, tasksPage)
	if !ok {
		return
	}
	_ = s.views.CompleteTask(r.Context(), doc, s.session, taskID)
	if doc.ReloadRequested() {
		s.reload(w, r, page, doc)
		return
	}
	// The task page reads its project from the last path segment, which
	// here is the task id, so a failed completion goes back without alerts.
	http.Redirect(w, r, page, http.StatusSeeOther)
}
