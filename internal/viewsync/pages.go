package viewsync

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/okian/staffboard/internal/dom"
)

type loadFunc func(ctx context.Context, doc *dom.Document, s Session) error

// load runs every fetch concurrently and waits for all of them. Fetches are
// unordered; each writes only its own container. The returned error joins
// the individual failures, which have already been logged.
func load(ctx context.Context, doc *dom.Document, s Session, fetches ...loadFunc) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, fetch := range fetches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(ctx, doc, s); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// pageFetch is one load-time fetch and the container it fills.
type pageFetch struct {
	container string
	fetch     loadFunc
}

// loadPage runs every fetch whose container is not in skip.
func loadPage(ctx context.Context, doc *dom.Document, s Session, fetches []pageFetch, skip []string) error {
	run := make([]loadFunc, 0, len(fetches))
	for _, f := range fetches {
		if !slices.Contains(skip, f.container) {
			run = append(run, f.fetch)
		}
	}
	return load(ctx, doc, s, run...)
}

// LoadEmployeeDashboard runs the load-time fetches of the employee dashboard.
// Containers named in skip were already refreshed by an action and are left alone.
func (v *ViewSync) LoadEmployeeDashboard(ctx context.Context, doc *dom.Document, s Session, skip ...string) error {
	return loadPage(ctx, doc, s, []pageFetch{
		{SkillListID, v.ListEmployeeSkills},
		{AssignedProjectsID, v.ListAssignedProjects},
		{SkillsListID, v.ListSkills},
		{ProjectsListID, v.ListEmployeeProjectLinks},
		{AssignmentLogsID, v.ListAssignmentLogs},
	}, skip)
}

// LoadProjectsPage runs the load-time fetches of the projects page.
func (v *ViewSync) LoadProjectsPage(ctx context.Context, doc *dom.Document, s Session, skip ...string) error {
	return loadPage(ctx, doc, s, []pageFetch{
		{ProjectListID, v.ListProjects},
		{EmployeeListID, v.ListEmployees},
	}, skip)
}

// LoadTasksPage runs the load-time fetch of a project's task page.
func (v *ViewSync) LoadTasksPage(ctx context.Context, doc *dom.Document, s Session, skip ...string) error {
	return loadPage(ctx, doc, s, []pageFetch{
		{TasksListID, v.ListTasks},
	}, skip)
}
