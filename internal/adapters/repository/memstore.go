package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/staffboard/internal/domain/model"
)

// logTimeLayout is the timestamp format of assignment log lines.
const logTimeLayout = "2006-01-02 15:04:05"

type employeeRecord struct {
	id     int
	name   string
	skills []string
}

type taskRecord struct {
	model.Task
	projectID  string
	employeeID int
}

type milestoneRecord struct {
	id         int
	name       string
	employeeID int
	completed  bool
}

type logRecord struct {
	at  time.Time
	msg string
}

// MemoryStore is a mutex-guarded, in-memory Store.
type MemoryStore struct {
	mu sync.RWMutex

	employees   map[int]*employeeRecord
	projects    []model.Project
	projectIdx  map[string]int
	assignments map[int][]string
	tasks       map[int]*taskRecord
	milestones  map[int]*milestoneRecord
	logs        map[int][]logRecord

	nextEmployee  int
	nextTask      int
	nextMilestone int

	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock replaces time.Now, which stamps assignment log lines.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		employees:   make(map[int]*employeeRecord),
		projectIdx:  make(map[string]int),
		assignments: make(map[int][]string),
		tasks:       make(map[int]*taskRecord),
		milestones:  make(map[int]*milestoneRecord),
		logs:        make(map[int][]logRecord),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Skills implements Store.
func (s *MemoryStore) Skills(_ context.Context, employeeID int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[employeeID]
	if !ok {
		return nil, fmt.Errorf("employee %d: %w", employeeID, ErrNotFound)
	}
	return append([]string{}, e.skills...), nil
}

// AddSkill implements Store.
func (s *MemoryStore) AddSkill(_ context.Context, employeeID int, skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return fmt.Errorf("skill: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[employeeID]
	if !ok {
		return fmt.Errorf("employee %d: %w", employeeID, ErrNotFound)
	}
	if slices.Contains(e.skills, skill) {
		return nil
	}
	e.skills = append(e.skills, skill)
	return nil
}

// Projects implements Store.
func (s *MemoryStore) Projects(_ context.Context) []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Project{}, s.projects...)
}

// AddProject implements Store.
func (s *MemoryStore) AddProject(_ context.Context, p model.Project) error {
	if strings.TrimSpace(p.ProjectID) == "" {
		return fmt.Errorf("project_id: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projectIdx[p.ProjectID]; ok {
		return fmt.Errorf("project %s: %w", p.ProjectID, ErrDuplicate)
	}
	s.projectIdx[p.ProjectID] = len(s.projects)
	s.projects = append(s.projects, p)
	return nil
}

// ProjectsFor implements Store.
func (s *MemoryStore) ProjectsFor(_ context.Context, employeeID int) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.employees[employeeID]; !ok {
		return nil, fmt.Errorf("employee %d: %w", employeeID, ErrNotFound)
	}
	out := []model.Project{}
	for _, id := range s.assignments[employeeID] {
		out = append(out, s.projects[s.projectIdx[id]])
	}
	return out, nil
}

// Assign implements Store.
func (s *MemoryStore) Assign(_ context.Context, employeeID int, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return fmt.Errorf("employee %d: %w", employeeID, ErrNotFound)
	}
	if _, ok := s.projectIdx[projectID]; !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if slices.Contains(s.assignments[employeeID], projectID) {
		return nil
	}
	s.assignments[employeeID] = append(s.assignments[employeeID], projectID)
	s.appendLog(employeeID, fmt.Sprintf("Assigned to project %s", projectID))
	return nil
}

// Tasks implements Store.
func (s *MemoryStore) Tasks(_ context.Context, projectID string, employeeID int) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Task{}
	for _, t := range s.tasks {
		if t.projectID == projectID && t.employeeID == employeeID && !t.Completed {
			out = append(out, t.Task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddTask implements Store.
func (s *MemoryStore) AddTask(_ context.Context, projectID string, employeeID int, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("task name: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projectIdx[projectID]; !ok {
		return 0, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if _, ok := s.employees[employeeID]; !ok {
		return 0, fmt.Errorf("employee %d: %w", employeeID, ErrNotFound)
	}
	s.nextTask++
	s.tasks[s.nextTask] = &taskRecord{
		Task:       model.Task{ID: s.nextTask, Name: name},
		projectID:  projectID,
		employeeID: employeeID,
	}
	s.appendLog(employeeID, fmt.Sprintf("Task '%s' assigned in project %s", name, projectID))
	return s.nextTask, nil
}

// CompleteTask implements Store.
func (s *MemoryStore) CompleteTask(_ context.Context, taskID int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return model.Task{}, fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	if !t.Completed {
		t.Completed = true
		s.appendLog(t.employeeID, fmt.Sprintf("Task '%s' completed", t.Name))
	}
	return t.Task, nil
}

// Employees implements Store.
func (s *MemoryStore) Employees(_ context.Context) []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, model.Employee{ID: e.id, Name: e.name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddEmployee implements Store.
func (s *MemoryStore) AddEmployee(_ context.Context, name string, skills ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEmployee++
	s.employees[s.nextEmployee] = &employeeRecord{
		id:     s.nextEmployee,
		name:   name,
		skills: append([]string{}, skills...),
	}
	return s.nextEmployee
}

// AddMilestone implements Store.
func (s *MemoryStore) AddMilestone(_ context.Context, employeeID int, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return 0, fmt.Errorf("employee %d: %w", employeeID, ErrNotFound)
	}
	s.nextMilestone++
	s.milestones[s.nextMilestone] = &milestoneRecord{id: s.nextMilestone, name: name, employeeID: employeeID}
	return s.nextMilestone, nil
}

// CompleteMilestone implements Store.
func (s *MemoryStore) CompleteMilestone(_ context.Context, milestoneID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.milestones[milestoneID]
	if !ok {
		return fmt.Errorf("milestone %d: %w", milestoneID, ErrNotFound)
	}
	if !m.completed {
		m.completed = true
		s.appendLog(m.employeeID, fmt.Sprintf("Milestone '%s' completed", m.name))
	}
	return nil
}

// AssignmentLogs implements Store.
func (s *MemoryStore) AssignmentLogs(_ context.Context, employeeID int) []model.AssignmentLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.logs[employeeID]
	out := make([]model.AssignmentLog, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, model.AssignmentLog{
			Timestamp: recs[i].at.Format(logTimeLayout),
			Message:   recs[i].msg,
		})
	}
	return out
}

// appendLog must be called with s.mu held for writing.
func (s *MemoryStore) appendLog(employeeID int, msg string) {
	s.logs[employeeID] = append(s.logs[employeeID], logRecord{at: s.now(), msg: msg})
}
