package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/lifehack/internal/models"
)

var evalAt = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func task(id int64, status models.TaskStatus, due time.Time) models.Task {
	return models.Task{ID: id, PlanID: 1, Title: fmt.Sprintf("task %d", id), Status: status, DueAt: due}
}

func completedTask(id int64, at time.Time) models.Task {
	t := task(id, models.TaskStatusCompleted, at)
	t.CompletedAt = &at
	return t
}

func TestBuildDashboard_OverdueCount(t *testing.T) {
	tasks := []models.Task{
		task(1, models.TaskStatusPending, evalAt.Add(-24*time.Hour)),
		task(2, models.TaskStatusPending, evalAt.Add(24*time.Hour)),
	}

	d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())

	assert.Equal(t, 1, d.Summary.Overdue)
	assert.Equal(t, 2, d.Summary.Pending)
	assert.Equal(t, 2, d.Summary.Total)
	assert.Equal(t, []string{"You have 1 overdue tasks. Consider rescheduling or completing them."}, d.Recommendations)
}

func TestBuildDashboard_OverdueIsStrict(t *testing.T) {
	tasks := []models.Task{
		task(1, models.TaskStatusPending, evalAt),
		task(2, models.TaskStatusInProgress, evalAt.Add(-time.Hour)),
		completedTask(3, evalAt.Add(-time.Hour)),
	}

	d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())

	assert.Equal(t, 0, d.Summary.Overdue)
	assert.Equal(t, 1, d.Summary.InProgress)
	assert.Equal(t, 1, d.Summary.Completed)
}

func TestBuildDashboard_Upcoming(t *testing.T) {
	var tasks []models.Task
	for i := 7; i >= 1; i-- {
		tasks = append(tasks, task(int64(i), models.TaskStatusPending, evalAt.Add(time.Duration(i)*time.Hour)))
	}
	tasks = append(tasks, task(8, models.TaskStatusInProgress, evalAt))
	input := append([]models.Task(nil), tasks...)

	d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())

	require.Len(t, d.Upcoming, 5)
	for i, up := range d.Upcoming {
		assert.Equal(t, int64(i+1), up.ID)
	}
	assert.Equal(t, input, tasks, "input must not be reordered")
}

func TestBuildDashboard_UpcomingTieBreaksByID(t *testing.T) {
	due := evalAt.Add(time.Hour)
	tasks := []models.Task{
		task(3, models.TaskStatusPending, due),
		task(1, models.TaskStatusPending, due),
		task(2, models.TaskStatusPending, due),
	}

	d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())

	require.Len(t, d.Upcoming, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{d.Upcoming[0].ID, d.Upcoming[1].ID, d.Upcoming[2].ID})
}

func TestBuildDashboard_RecentCompletions(t *testing.T) {
	tasks := []models.Task{
		completedTask(1, evalAt.Add(-4*time.Hour)),
		completedTask(2, evalAt.Add(-1*time.Hour)),
		completedTask(3, evalAt.Add(-3*time.Hour)),
		completedTask(4, evalAt.Add(-2*time.Hour)),
		task(5, models.TaskStatusCompleted, evalAt),
	}

	d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())

	require.Len(t, d.RecentCompletions, 3)
	assert.Equal(t, []int64{2, 4, 3}, []int64{
		d.RecentCompletions[0].ID, d.RecentCompletions[1].ID, d.RecentCompletions[2].ID,
	})
}

func TestBuildDashboard_Recommendations(t *testing.T) {
	t.Run("Should congratulate when nothing is pending", func(t *testing.T) {
		d := BuildDashboard(nil, evalAt, DefaultDashboardOptions())
		assert.Equal(t, []string{
			"Great job! You have no pending tasks. Consider creating a new plan for your next goal.",
		}, d.Recommendations)
		assert.NotNil(t, d.Upcoming)
		assert.NotNil(t, d.RecentCompletions)
	})

	t.Run("Should flag many pending tasks above the threshold", func(t *testing.T) {
		var tasks []models.Task
		for i := 1; i <= 11; i++ {
			tasks = append(tasks, task(int64(i), models.TaskStatusPending, evalAt.Add(time.Hour)))
		}
		d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())
		assert.Equal(t, []string{
			"You have many pending tasks. Consider prioritizing the most important ones.",
		}, d.Recommendations)
	})

	t.Run("Should not flag exactly ten pending tasks", func(t *testing.T) {
		var tasks []models.Task
		for i := 1; i <= 10; i++ {
			tasks = append(tasks, task(int64(i), models.TaskStatusPending, evalAt.Add(time.Hour)))
		}
		d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())
		assert.Empty(t, d.Recommendations)
	})

	t.Run("Should order overdue before many pending", func(t *testing.T) {
		var tasks []models.Task
		for i := 1; i <= 12; i++ {
			tasks = append(tasks, task(int64(i), models.TaskStatusPending, evalAt.Add(-time.Hour)))
		}
		d := BuildDashboard(tasks, evalAt, DefaultDashboardOptions())
		require.Len(t, d.Recommendations, 2)
		assert.Contains(t, d.Recommendations[0], "12 overdue")
		assert.Contains(t, d.Recommendations[1], "many pending")
	})
}

func TestSuggestAutomations(t *testing.T) {
	tests := []struct {
		category string
		want     []string
	}{
		{category: "shopping", want: []string{"budget", "productivity"}},
		{category: "finance", want: []string{"budget"}},
		{category: "productivity", want: []string{"productivity"}},
		{category: "general", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			plan := Generate(models.Problem{Category: tt.category}, evalAt)
			got := []string{}
			for _, s := range SuggestAutomations(plan) {
				got = append(got, s.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextSteps(t *testing.T) {
	t.Run("Should start with the earliest pending task", func(t *testing.T) {
		tasks := []models.Task{
			task(1, models.TaskStatusPending, evalAt.Add(2*time.Hour)),
			task(2, models.TaskStatusCompleted, evalAt),
			task(3, models.TaskStatusPending, evalAt.Add(time.Hour)),
		}
		steps := NextSteps(tasks)
		require.Len(t, steps, 5)
		assert.Equal(t, "Start with: task 3", steps[0])
		assert.Equal(t, "Track your progress and adjust the plan as needed", steps[4])
	})

	t.Run("Should only give standing advice without pending tasks", func(t *testing.T) {
		steps := NextSteps(nil)
		assert.Equal(t, standingAdvice, steps)
	})
}
