package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/staffboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestProject(t *testing.T) {
	convey.Convey("Given a project", t, func() {
		p := model.Project{ProjectID: "P1", Description: "Infra"}

		convey.Convey("Then its label joins id and description", func() {
			convey.So(p.Label(), convey.ShouldEqual, "P1 - Infra")
		})

		convey.Convey("When the id is blank", func() {
			p.ProjectID = " "

			convey.Convey("Then validation reports a malformed row", func() {
				convey.So(errors.Is(p.Validate(), model.ErrMalformed), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTaskDecoding(t *testing.T) {
	convey.Convey("Given a task array without completion flags", t, func() {
		var tasks []model.Task
		err := json.Unmarshal([]byte(`[{"id":42,"name":"Write docs"}]`), &tasks)

		convey.Convey("Then completion defaults to false", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(tasks, convey.ShouldHaveLength, 1)
			convey.So(tasks[0].ID, convey.ShouldEqual, 42)
			convey.So(tasks[0].Completed, convey.ShouldBeFalse)
			convey.So(model.ValidateTasks(tasks), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a task without a name", t, func() {
		err := model.ValidateTasks([]model.Task{{ID: 1}})

		convey.Convey("Then validation fails", func() {
			convey.So(errors.Is(err, model.ErrMalformed), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a null tasks payload", t, func() {
		var tasks []model.Task
		_ = json.Unmarshal([]byte(`null`), &tasks)

		convey.Convey("Then validation fails", func() {
			convey.So(errors.Is(model.ValidateTasks(tasks), model.ErrMalformed), convey.ShouldBeTrue)
		})
	})
}

func TestSkillRequest(t *testing.T) {
	convey.Convey("Given skill requests", t, func() {
		convey.Convey("Then empty and whitespace skills are rejected", func() {
			convey.So(model.SkillRequest{Skill: ""}.Validate(), convey.ShouldEqual, model.ErrEmptySkill)
			convey.So(model.SkillRequest{Skill: " \t\n"}.Validate(), convey.ShouldEqual, model.ErrEmptySkill)
		})

		convey.Convey("Then a non-empty skill passes and is encoded verbatim", func() {
			req := model.SkillRequest{Skill: " Go "}
			convey.So(req.Validate(), convey.ShouldBeNil)
			body, err := json.Marshal(req)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(body), convey.ShouldEqual, `{"skill":" Go "}`)
		})
	})
}

func TestEnvelopes(t *testing.T) {
	convey.Convey("Given envelope responses", t, func() {
		convey.Convey("When the skills key is missing", func() {
			var r model.SkillsResponse
			_ = json.Unmarshal([]byte(`{}`), &r)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(r.Validate(), model.ErrMalformed), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the skills array is empty", func() {
			var r model.SkillsResponse
			_ = json.Unmarshal([]byte(`{"skills":[]}`), &r)

			convey.Convey("Then validation passes", func() {
				convey.So(r.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When a wrapped project lacks its id", func() {
			var r model.ProjectsEnvelope
			_ = json.Unmarshal([]byte(`{"projects":[{"description":"x"}]}`), &r)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(r.Validate(), model.ErrMalformed), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a project request misses its description", func() {
			err := model.ProjectRequest{ProjectID: "P1"}.Validate()

			convey.Convey("Then it is invalid", func() {
				convey.So(errors.Is(err, model.ErrInvalidRequest), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When labels are rendered", func() {
			convey.So(model.Employee{ID: 3, Name: "Ada"}.Label(), convey.ShouldEqual, "3 - Ada")
			convey.So(model.AssignmentLog{Timestamp: "2025-01-02 10:00:00", Message: "assigned"}.Label(),
				convey.ShouldEqual, "2025-01-02 10:00:00: assigned")
		})
	})
}
