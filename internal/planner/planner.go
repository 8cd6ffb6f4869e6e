package planner

import (
	"fmt"
	"time"

	"github.com/fentz26/lifehack/internal/models"
)

// Generate derives a plan for problem from its category template.
// The plan carries no ID until it is persisted.
func Generate(problem models.Problem, now time.Time) models.Plan {
	t := TemplateFor(problem.Category)
	return models.Plan{
		ProblemID:   problem.ID,
		GeneratedAt: now,
		Summary:     t.Summary,
		Steps:       t.Steps,
	}
}

// TaskDraft is a task that has not been assigned an ID yet.
type TaskDraft struct {
	PlanID int64
	StepID int
	Title  string
	DueAt  time.Time
}

// Materialize turns every step of plan into a pending task draft due at
// base plus the step's offset. All drafts share base, so step order is
// preserved in absolute time. Drafts are returned in step order.
func Materialize(plan models.Plan, base time.Time) ([]TaskDraft, error) {
	drafts := make([]TaskDraft, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		offset, err := ParseDueOffset(step.DueOffset)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step.StepID, err)
		}
		drafts = append(drafts, TaskDraft{
			PlanID: plan.ID,
			StepID: step.StepID,
			Title:  step.Title,
			DueAt:  base.Add(offset),
		})
	}
	return drafts, nil
}
