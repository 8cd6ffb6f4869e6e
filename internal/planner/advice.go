package planner

import (
	"sort"
	"strings"

	"github.com/fentz26/lifehack/internal/models"
)

// AutomationSuggestion points the user at an automation script that fits a plan.
type AutomationSuggestion struct {
	Type               string `json:"type"`
	Script             string `json:"script"`
	Description        string `json:"description"`
	EstimatedTimeSaved string `json:"estimated_time_saved"`
}

var suggestionRules = []struct {
	keywords   []string
	suggestion AutomationSuggestion
}{
	{
		keywords: []string{"budget", "money", "expense", "cost", "financial"},
		suggestion: AutomationSuggestion{
			Type:               "budget",
			Script:             "create_snapshot",
			Description:        "Create a budget snapshot to track your finances",
			EstimatedTimeSaved: "30 minutes",
		},
	},
	{
		keywords: []string{"schedule", "time", "productivity", "routine", "organize"},
		suggestion: AutomationSuggestion{
			Type:               "productivity",
			Script:             "create_schedule",
			Description:        "Create a daily schedule to optimize your time",
			EstimatedTimeSaved: "15 minutes daily",
		},
	},
}

// SuggestAutomations matches keywords in the plan summary against the
// automation catalog. At most one suggestion per automation type.
func SuggestAutomations(plan models.Plan) []AutomationSuggestion {
	summary := strings.ToLower(plan.Summary)
	out := []AutomationSuggestion{}
	for _, rule := range suggestionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(summary, kw) {
				out = append(out, rule.suggestion)
				break
			}
		}
	}
	return out
}

var standingAdvice = []string{
	"Review all tasks and their due dates",
	"Set up reminders for important deadlines",
	"Consider running suggested automation scripts",
	"Track your progress and adjust the plan as needed",
}

// NextSteps recommends where to start: the earliest-due pending task,
// then the standing advice.
func NextSteps(tasks []models.Task) []string {
	var pending []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskStatusPending {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].DueAt.Equal(pending[j].DueAt) {
			return pending[i].DueAt.Before(pending[j].DueAt)
		}
		return pending[i].ID < pending[j].ID
	})

	steps := make([]string, 0, len(standingAdvice)+1)
	if len(pending) > 0 {
		steps = append(steps, "Start with: "+pending[0].Title)
	}
	return append(steps, standingAdvice...)
}
