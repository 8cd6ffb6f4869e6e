package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/lifehack/internal/models"
	"github.com/fentz26/lifehack/internal/planner"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginTop(1)
)

const timeLayout = "2006-01-02 15:04"

// renderTaskDetail renders the selected task for the side panel.
func renderTaskDetail(t *models.Task, now time.Time) string {
	if t == nil {
		return labelStyle.Render("No task selected")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(t.Title) + "\n")
	b.WriteString(field("ID", fmt.Sprintf("%d", t.ID)))
	b.WriteString(field("Plan", fmt.Sprintf("%d", t.PlanID)))
	b.WriteString(field("Status", formatStatus(t.Status)))
	b.WriteString(field("Due", t.DueAt.Local().Format(timeLayout)))
	b.WriteString(field("Created", t.CreatedAt.Local().Format(timeLayout)))
	if t.CompletedAt != nil {
		b.WriteString(field("Completed", t.CompletedAt.Local().Format(timeLayout)))
	}
	if t.IsOverdue(now) {
		b.WriteString(statusOverdue.Render(fmt.Sprintf("Overdue by %s", now.Sub(t.DueAt).Round(time.Minute))) + "\n")
	}
	return b.String()
}

// renderRecommendations renders the dashboard recommendations and the
// recently completed tasks.
func renderRecommendations(d *planner.Dashboard) string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recommendations") + "\n")
	if len(d.Recommendations) == 0 {
		b.WriteString(labelStyle.Render("  Nothing to flag. Keep going.") + "\n")
	}
	for _, r := range d.Recommendations {
		b.WriteString("  • " + r + "\n")
	}

	if len(d.RecentCompletions) > 0 {
		b.WriteString(sectionStyle.Render("Recently completed") + "\n")
		for _, t := range d.RecentCompletions {
			b.WriteString("  ✓ " + t.Title + "\n")
		}
	}
	return b.String()
}

func field(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + valueStyle.Render(value) + "\n"
}
