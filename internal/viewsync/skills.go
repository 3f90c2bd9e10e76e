package viewsync

import (
	"context"
	"fmt"

	"github.com/okian/staffboard/internal/dom"
	"github.com/okian/staffboard/internal/domain/model"
	"github.com/okian/staffboard/pkg/metrics"
)

// SkillCapability lists and adds skills for the session employee.
type SkillCapability interface {
	List(ctx context.Context, s Session) ([]string, error)
	Add(ctx context.Context, s Session, skill string) (model.MessageResponse, error)
}

// SkillBinding ties a SkillCapability to the page elements it drives.
type SkillBinding struct {
	ListOp    string
	AddOp     string
	Container string
	Input     string
	// FullReload reloads the page after a successful add instead of
	// re-running the list fetch.
	FullReload bool
	Skills     SkillCapability
}

type employeeSkills struct{ b Backend }

func (e employeeSkills) List(ctx context.Context, _ Session) ([]string, error) {
	return e.b.EmployeeSkills(ctx)
}

func (e employeeSkills) Add(ctx context.Context, _ Session, skill string) (model.MessageResponse, error) {
	return e.b.AddEmployeeSkill(ctx, skill)
}

type legacySkills struct{ b Backend }

func (l legacySkills) List(ctx context.Context, s Session) ([]string, error) {
	return l.b.SkillsFor(ctx, s.EmployeeID)
}

func (l legacySkills) Add(ctx context.Context, _ Session, skill string) (model.MessageResponse, error) {
	return l.b.AddSkill(ctx, skill)
}

// EmployeeSkills binds /api/employee/skills to #skill-list and #new-skill.
// A successful add refreshes the list in place.
func (v *ViewSync) EmployeeSkills() SkillBinding {
	return SkillBinding{
		ListOp:    "list_employee_skills",
		AddOp:     "add_employee_skill",
		Container: SkillListID,
		Input:     NewSkillID,
		Skills:    employeeSkills{b: v.backend},
	}
}

// LegacySkills binds /api/skills/{id} and /api/add_skill to #skills-list and
// the add-skill form. A successful add reloads the page.
func (v *ViewSync) LegacySkills() SkillBinding {
	return SkillBinding{
		ListOp:     "list_skills",
		AddOp:      "add_skill",
		Container:  SkillsListID,
		Input:      AddSkillInputID,
		FullReload: true,
		Skills:     legacySkills{b: v.backend},
	}
}

// ListEmployeeSkills fills #skill-list from GET /api/employee/skills.
func (v *ViewSync) ListEmployeeSkills(ctx context.Context, doc *dom.Document, s Session) error {
	return v.ListSkillsWith(ctx, doc, s, v.EmployeeSkills())
}

// AddEmployeeSkill posts #new-skill to /api/employee/skills and refreshes #skill-list.
func (v *ViewSync) AddEmployeeSkill(ctx context.Context, doc *dom.Document, s Session) error {
	return v.AddSkillWith(ctx, doc, s, v.EmployeeSkills())
}

// ListSkills fills #skills-list from GET /api/skills/{employeeId}.
func (v *ViewSync) ListSkills(ctx context.Context, doc *dom.Document, s Session) error {
	return v.ListSkillsWith(ctx, doc, s, v.LegacySkills())
}

// AddSkill posts the add-skill form to /api/add_skill and reloads the page.
func (v *ViewSync) AddSkill(ctx context.Context, doc *dom.Document, s Session) error {
	return v.AddSkillWith(ctx, doc, s, v.LegacySkills())
}

// ListSkillsWith fills the binding's container with one item per skill.
func (v *ViewSync) ListSkillsWith(ctx context.Context, doc *dom.Document, s Session, b SkillBinding) error {
	skills, err := b.Skills.List(ctx, s)
	if err != nil {
		return v.fail(ctx, b.ListOp, err)
	}
	if err := RenderList(doc, b.Container, skills, textRow); err != nil {
		return v.fail(ctx, b.ListOp, err)
	}
	return nil
}

// AddSkillWith submits the binding's input. A blank value alerts the user and
// sends nothing. The value is sent exactly as typed.
func (v *ViewSync) AddSkillWith(ctx context.Context, doc *dom.Document, s Session, b SkillBinding) error {
	skill := doc.Value(b.Input)
	if err := (model.SkillRequest{Skill: skill}).Validate(); err != nil {
		metrics.RecordValidationError(b.AddOp)
		doc.Alert(EmptySkillAlert)
		return fmt.Errorf("%s: %w", b.AddOp, err)
	}

	resp, err := b.Skills.Add(ctx, s, skill)
	if err != nil {
		return v.fail(ctx, b.AddOp, err)
	}
	doc.Alert(resp.Message)
	if b.FullReload {
		doc.Reload()
		return nil
	}
	return v.ListSkillsWith(ctx, doc, s, b)
}
