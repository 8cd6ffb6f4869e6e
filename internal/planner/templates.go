package planner

import (
	"strings"

	"github.com/fentz26/lifehack/internal/models"
)

// DefaultCategory is the template used for categories without their own plan.
const DefaultCategory = "general"

// Template is a static plan blueprint for one problem category.
type Template struct {
	Category string
	Summary  string
	Steps    []models.PlanStep
}

var templates = map[string]Template{
	"shopping": {
		Category: "shopping",
		Summary:  "Optimize your weekly grocery shopping to save time and money",
		Steps: []models.PlanStep{
			{StepID: 1, Title: "Create a meal plan", Details: "Plan your meals for the week to know exactly what you need", DueOffset: "0h"},
			{StepID: 2, Title: "Take inventory", Details: "Check what you already have to avoid buying duplicates", DueOffset: "1h"},
			{StepID: 3, Title: "Make a shopping list", Details: "Create a detailed list organized by store sections", DueOffset: "2h"},
			{StepID: 4, Title: "Compare prices online", Details: "Check weekly ads and apps for deals", DueOffset: "1d"},
			{StepID: 5, Title: "Shop during off-peak hours", Details: "Go early morning or late evening to avoid crowds", DueOffset: "2d"},
			{StepID: 6, Title: "Batch cook and freeze", Details: "Prepare meals in bulk to save time later", DueOffset: "3d"},
		},
	},
	"productivity": {
		Category: "productivity",
		Summary:  "Establish an effective morning routine for better daily productivity",
		Steps: []models.PlanStep{
			{StepID: 1, Title: "Plan the night before", Details: "Set out your priorities for the next day before bed", DueOffset: "0h"},
			{StepID: 2, Title: "Wake up consistently", Details: "Set a regular wake-up time, even on weekends", DueOffset: "1d"},
			{StepID: 3, Title: "Hydrate first", Details: "Drink a glass of water before anything else", DueOffset: "1d"},
			{StepID: 4, Title: "No screens for 30 minutes", Details: "Avoid checking email or social media right away", DueOffset: "1d"},
			{StepID: 5, Title: "Exercise briefly", Details: "Do 5-10 minutes of stretching or light movement", DueOffset: "1d"},
			{StepID: 6, Title: "Review your day's plan", Details: "Check your calendar and top priorities", DueOffset: "1d"},
		},
	},
	"finance": {
		Category: "finance",
		Summary:  "Create and maintain a personal monthly budget",
		Steps: []models.PlanStep{
			{StepID: 1, Title: "Track current spending", Details: "Record all expenses for two weeks to establish a baseline", DueOffset: "0h"},
			{StepID: 2, Title: "Categorize expenses", Details: "Group spending into categories (housing, food, transport, etc.)", DueOffset: "14d"},
			{StepID: 3, Title: "Set category limits", Details: "Establish reasonable spending limits for each category", DueOffset: "15d"},
			{StepID: 4, Title: "Create a budget document", Details: "Use a spreadsheet or app to formalize your budget", DueOffset: "16d"},
			{StepID: 5, Title: "Set up tracking system", Details: "Choose a method to track expenses against budget", DueOffset: "17d"},
			{StepID: 6, Title: "Schedule weekly reviews", Details: "Set aside 15 minutes weekly to review and adjust", DueOffset: "18d"},
		},
	},
	DefaultCategory: {
		Category: DefaultCategory,
		Summary:  "Solve your daily life problem with a structured approach",
		Steps: []models.PlanStep{
			{StepID: 1, Title: "Define the problem clearly", Details: "Write down exactly what you're trying to solve", DueOffset: "0h"},
			{StepID: 2, Title: "Break it into smaller parts", Details: "Divide the problem into manageable components", DueOffset: "1h"},
			{StepID: 3, Title: "Research solutions", Details: "Look for how others have solved similar problems", DueOffset: "1d"},
			{StepID: 4, Title: "Create an action plan", Details: "List specific steps with deadlines", DueOffset: "2d"},
			{StepID: 5, Title: "Execute first step", Details: "Complete the first action item", DueOffset: "3d"},
			{StepID: 6, Title: "Review and adjust", Details: "Evaluate progress and modify plan as needed", DueOffset: "7d"},
		},
	},
}

// Categories returns the categories that have a dedicated template,
// followed by the default.
func Categories() []string {
	return []string{"shopping", "productivity", "finance", DefaultCategory}
}

// NormalizeCategory trims and lowercases a free-text category.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// TemplateFor returns the template for category, falling back to the
// general template for unknown categories. The returned steps are a copy.
func TemplateFor(category string) Template {
	t, ok := templates[NormalizeCategory(category)]
	if !ok {
		t = templates[DefaultCategory]
	}
	steps := make([]models.PlanStep, len(t.Steps))
	copy(steps, t.Steps)
	t.Steps = steps
	return t
}
