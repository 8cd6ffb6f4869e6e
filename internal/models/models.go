// Package models defines the core domain types for lifehack.
package models

import "time"

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Problem is a daily-life problem the user wants a plan for.
type Problem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlanStep is one ordered step of a plan.
type PlanStep struct {
	StepID    int    `json:"step_id"`
	Title     string `json:"title"`
	Details   string `json:"details"`
	DueOffset string `json:"due_offset"` // e.g. "2h", "1d", "1w"
}

// Plan is the category-derived sequence of steps for a problem.
// Plans are never mutated after generation.
type Plan struct {
	ID          int64      `json:"id"`
	ProblemID   int64      `json:"problem_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Summary     string     `json:"summary"`
	Steps       []PlanStep `json:"steps"`
}

// Task is an actionable, status-tracked unit derived from a plan step.
type Task struct {
	ID          int64      `json:"id"`
	PlanID      int64      `json:"plan_id"`
	Title       string     `json:"title"`
	DueAt       time.Time  `json:"due_at"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsOverdue reports whether a pending task is past its due time.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Status == TaskStatusPending && t.DueAt.Before(now)
}

// AuditEntry records a state-mutating action for the audit trail.
type AuditEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	InputsHash string    `json:"inputs_hash"`
	Outcome    string    `json:"outcome"`
	Subject    string    `json:"subject,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
