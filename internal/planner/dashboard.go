package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/fentz26/lifehack/internal/models"
)

// DashboardOptions tunes the dashboard projection.
type DashboardOptions struct {
	UpcomingLimit        int `yaml:"upcoming_limit"`
	RecentLimit          int `yaml:"recent_limit"`
	ManyPendingThreshold int `yaml:"many_pending_threshold"`
}

// DefaultDashboardOptions returns the standard limits.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{
		UpcomingLimit:        5,
		RecentLimit:          3,
		ManyPendingThreshold: 10,
	}
}

// Summary holds the task counts shown on the dashboard.
type Summary struct {
	Total      int `json:"total_tasks"`
	Pending    int `json:"pending_tasks"`
	InProgress int `json:"in_progress_tasks"`
	Completed  int `json:"completed_tasks"`
	Overdue    int `json:"overdue_tasks"`
}

// Dashboard is a read-only aggregate over the current task set.
type Dashboard struct {
	GeneratedAt       time.Time     `json:"generated_at"`
	Summary           Summary       `json:"summary"`
	Upcoming          []models.Task `json:"upcoming_tasks"`
	RecentCompletions []models.Task `json:"recent_completions"`
	Recommendations   []string      `json:"recommendations"`
}

// BuildDashboard projects tasks into a Dashboard evaluated at now.
// The input slice is not modified.
func BuildDashboard(tasks []models.Task, now time.Time, opts DashboardOptions) Dashboard {
	d := Dashboard{
		GeneratedAt:       now,
		Upcoming:          []models.Task{},
		RecentCompletions: []models.Task{},
		Recommendations:   []string{},
	}

	var pending, completed []models.Task
	for _, t := range tasks {
		d.Summary.Total++
		switch t.Status {
		case models.TaskStatusPending:
			pending = append(pending, t)
			if t.IsOverdue(now) {
				d.Summary.Overdue++
			}
		case models.TaskStatusInProgress:
			d.Summary.InProgress++
		case models.TaskStatusCompleted:
			completed = append(completed, t)
		}
	}
	d.Summary.Pending = len(pending)
	d.Summary.Completed = len(completed)

	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].DueAt.Equal(pending[j].DueAt) {
			return pending[i].DueAt.Before(pending[j].DueAt)
		}
		return pending[i].ID < pending[j].ID
	})
	d.Upcoming = append(d.Upcoming, head(pending, opts.UpcomingLimit)...)

	sort.SliceStable(completed, func(i, j int) bool {
		a, b := completed[i].CompletedAt, completed[j].CompletedAt
		switch {
		case a == nil && b == nil:
			return completed[i].ID > completed[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return completed[i].ID > completed[j].ID
	})
	d.RecentCompletions = append(d.RecentCompletions, head(completed, opts.RecentLimit)...)

	if d.Summary.Overdue > 0 {
		d.Recommendations = append(d.Recommendations,
			fmt.Sprintf("You have %d overdue tasks. Consider rescheduling or completing them.", d.Summary.Overdue))
	}
	if d.Summary.Pending > opts.ManyPendingThreshold {
		d.Recommendations = append(d.Recommendations,
			"You have many pending tasks. Consider prioritizing the most important ones.")
	}
	if d.Summary.Pending == 0 {
		d.Recommendations = append(d.Recommendations,
			"Great job! You have no pending tasks. Consider creating a new plan for your next goal.")
	}
	return d
}

func head(tasks []models.Task, n int) []models.Task {
	if n >= 0 && len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}
