// Package assistant provides the service layer and HTTP API for lifehack.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fentz26/lifehack/internal/audit"
	"github.com/fentz26/lifehack/internal/automation"
	"github.com/fentz26/lifehack/internal/metrics"
	"github.com/fentz26/lifehack/internal/models"
	"github.com/fentz26/lifehack/internal/planner"
	"github.com/fentz26/lifehack/internal/store"
)

// Options holds the optional collaborators of a Service.
type Options struct {
	Logger    *zap.Logger
	Metrics   *metrics.Collector
	Clock     func() time.Time
	Dashboard planner.DashboardOptions
}

// Service provides the assistant business logic.
type Service struct {
	store     *store.Store
	audit     *audit.Recorder
	runner    *automation.Runner
	metrics   *metrics.Collector
	logger    *zap.Logger
	now       func() time.Time
	dashboard planner.DashboardOptions
}

// NewService creates a new assistant service.
func NewService(s *store.Store, rec *audit.Recorder, runner *automation.Runner, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Dashboard == (planner.DashboardOptions{}) {
		opts.Dashboard = planner.DefaultDashboardOptions()
	}
	return &Service{
		store:     s,
		audit:     rec,
		runner:    runner,
		metrics:   opts.Metrics,
		logger:    opts.Logger.Named("service"),
		now:       opts.Clock,
		dashboard: opts.Dashboard,
	}
}

// Health checks that the database is reachable.
func (s *Service) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// --- Problem Operations ---

// ProblemInput is the payload for creating a problem.
type ProblemInput struct {
	Title       string  `json:"title" validate:"required,min=5,max=100"`
	Category    string  `json:"category" validate:"required,min=3,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// CreateProblem validates and stores a new problem.
func (s *Service) CreateProblem(in ProblemInput) (*models.Problem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	p, err := s.store.CreateProblem(in.Title, in.Category, in.Description)
	if err != nil {
		return nil, err
	}

	s.audit.Record("problem.create", in, "success", subject("problem", p.ID), "")
	if s.metrics != nil {
		s.metrics.ProblemsCreated.Inc()
	}
	s.logger.Info("problem created", zap.Int64("problem_id", p.ID), zap.String("category", p.Category))
	return p, nil
}

// GetProblem retrieves a problem by ID.
func (s *Service) GetProblem(id int64) (*models.Problem, error) {
	p, err := s.store.GetProblem(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProblemNotFound
	}
	return p, nil
}

// ListProblems returns all problems.
func (s *Service) ListProblems() ([]models.Problem, error) {
	return s.store.ListProblems()
}

// --- Plan Operations ---

// GeneratePlan derives a plan from the problem's category and stores it.
func (s *Service) GeneratePlan(problemID int64) (*models.Plan, error) {
	problem, err := s.GetProblem(problemID)
	if err != nil {
		return nil, err
	}

	plan, err := s.store.CreatePlan(planner.Generate(*problem, s.now()))
	if err != nil {
		return nil, err
	}

	template := planner.TemplateFor(problem.Category).Category
	s.audit.Record("plan.generate", map[string]interface{}{"problem_id": problemID, "category": problem.Category},
		"success", subject("plan", plan.ID), fmt.Sprintf("template=%s steps=%d", template, len(plan.Steps)))
	if s.metrics != nil {
		s.metrics.PlansGenerated.WithLabelValues(template).Inc()
	}
	s.logger.Info("plan generated",
		zap.Int64("plan_id", plan.ID),
		zap.Int64("problem_id", problemID),
		zap.String("template", template),
	)
	return plan, nil
}

// GetPlan retrieves a plan by ID.
func (s *Service) GetPlan(id int64) (*models.Plan, error) {
	plan, err := s.store.GetPlan(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// ListPlans returns every plan generated for a problem.
func (s *Service) ListPlans(problemID int64) ([]models.Plan, error) {
	if _, err := s.GetProblem(problemID); err != nil {
		return nil, err
	}
	return s.store.ListPlansForProblem(problemID)
}

// MaterializeTasks creates one pending task per plan step. All tasks share
// one creation instant and are due at that instant plus the step offset.
func (s *Service) MaterializeTasks(planID int64) ([]models.Task, error) {
	plan, err := s.GetPlan(planID)
	if err != nil {
		return nil, err
	}

	base := s.now()
	drafts, err := planner.Materialize(*plan, base)
	if err != nil {
		return nil, &ValidationError{Field: "due_offset", Message: err.Error(), Err: err}
	}

	tasks := make([]models.Task, len(drafts))
	for i, d := range drafts {
		tasks[i] = models.Task{
			PlanID:    d.PlanID,
			Title:     d.Title,
			DueAt:     d.DueAt,
			Status:    models.TaskStatusPending,
			CreatedAt: base,
		}
	}

	created, err := s.store.CreateTasks(tasks)
	if err != nil {
		return nil, err
	}

	s.audit.Record("plan.materialize", map[string]int64{"plan_id": planID}, "success",
		subject("plan", planID), fmt.Sprintf("tasks=%d", len(created)))
	if s.metrics != nil {
		s.metrics.TasksCreated.Add(float64(len(created)))
	}
	s.logger.Info("tasks materialized", zap.Int64("plan_id", planID), zap.Int("count", len(created)))
	return created, nil
}

// --- Task Operations ---

// TaskInput is the payload for creating a task by hand.
type TaskInput struct {
	Title string     `json:"title" validate:"required,max=200"`
	DueAt *time.Time `json:"due_at,omitempty"`
}

// CreateTask adds a task to a plan. The task is due now unless DueAt is given.
func (s *Service) CreateTask(planID int64, in TaskInput) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.GetPlan(planID); err != nil {
		return nil, err
	}

	now := s.now()
	due := now
	if in.DueAt != nil {
		due = *in.DueAt
	}

	task, err := s.store.CreateTask(models.Task{
		PlanID:    planID,
		Title:     in.Title,
		DueAt:     due,
		Status:    models.TaskStatusPending,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record("task.create", in, "success", subject("task", task.ID), "")
	if s.metrics != nil {
		s.metrics.TasksCreated.Inc()
	}
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *Service) GetTask(id int64) (*models.Task, error) {
	task, err := s.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// ListTasks returns tasks, optionally filtered by status.
func (s *Service) ListTasks(status string) ([]models.Task, error) {
	st := models.TaskStatus(status)
	if st != "" && !st.Valid() {
		return nil, invalid("status", "status must be one of: pending in_progress completed")
	}
	return s.store.ListTasks(st)
}

// ListPlanTasks returns the tasks of one plan.
func (s *Service) ListPlanTasks(planID int64) ([]models.Task, error) {
	if _, err := s.GetPlan(planID); err != nil {
		return nil, err
	}
	return s.store.ListTasksForPlan(planID)
}

// StatusInput is the payload for a task status change.
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// UpdateTaskStatus moves a task to a new status. completed_at is set on
// entering completed and cleared on leaving it.
func (s *Service) UpdateTaskStatus(id int64, status string) (*models.Task, error) {
	if err := validateStruct(StatusInput{Status: status}); err != nil {
		return nil, err
	}
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	next := models.TaskStatus(status)
	var completedAt *time.Time
	if next == models.TaskStatusCompleted {
		if task.CompletedAt != nil {
			completedAt = task.CompletedAt
		} else {
			now := s.now()
			completedAt = &now
		}
	}

	ok, err := s.store.UpdateTaskStatus(id, next, completedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaskNotFound
	}

	s.audit.Record("task.status", map[string]interface{}{"task_id": id, "status": status}, "success",
		subject("task", id), fmt.Sprintf("%s -> %s", task.Status, next))
	if s.metrics != nil && next == models.TaskStatusCompleted && task.Status != models.TaskStatusCompleted {
		s.metrics.TasksCompleted.Inc()
	}
	return s.GetTask(id)
}

// CompleteTask marks a task completed.
func (s *Service) CompleteTask(id int64) (*models.Task, error) {
	return s.UpdateTaskStatus(id, string(models.TaskStatusCompleted))
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(id int64) error {
	ok, err := s.store.DeleteTask(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	s.audit.Record("task.delete", map[string]int64{"task_id": id}, "success", subject("task", id), "")
	return nil
}

// Dashboard aggregates all tasks as of now.
func (s *Service) Dashboard() (*planner.Dashboard, error) {
	tasks, err := s.store.ListTasks("")
	if err != nil {
		return nil, err
	}
	d := planner.BuildDashboard(tasks, s.now(), s.dashboard)
	return &d, nil
}

// --- Workflow ---

// Solution is the result of running the full problem-solving workflow.
type Solution struct {
	ProblemID             int64                          `json:"problem_id"`
	Plan                  *models.Plan                   `json:"plan"`
	Tasks                 []models.Task                  `json:"tasks"`
	AutomationSuggestions []planner.AutomationSuggestion `json:"automation_suggestions"`
	NextSteps             []string                       `json:"next_steps"`
	CompletedAt           time.Time                      `json:"completed_at"`
}

// SolveProblem generates a plan for a problem, optionally materializes its
// tasks, and suggests automations and next steps.
func (s *Service) SolveProblem(problemID int64, createTasks bool) (*Solution, error) {
	plan, err := s.GeneratePlan(problemID)
	if err != nil {
		return nil, err
	}

	tasks := []models.Task{}
	if createTasks {
		if tasks, err = s.MaterializeTasks(plan.ID); err != nil {
			return nil, err
		}
	}

	return &Solution{
		ProblemID:             problemID,
		Plan:                  plan,
		Tasks:                 tasks,
		AutomationSuggestions: planner.SuggestAutomations(*plan),
		NextSteps:             planner.NextSteps(tasks),
		CompletedAt:           s.now(),
	}, nil
}

// --- Automation Operations ---

// ListAutomations returns the automation catalog.
func (s *Service) ListAutomations() []automation.Script {
	return automation.Catalog()
}

// RunAutomation executes a catalog script. A failing script is reported in
// the returned record; only an unknown script is an error.
func (s *Service) RunAutomation(ctx context.Context, automationType, script string, params map[string]interface{}) (*automation.ExecutionResult, error) {
	res, err := s.runner.Run(ctx, automationType, script, params)
	if errors.Is(err, automation.ErrUnknownScript) {
		return nil, &ValidationError{Field: "script", Message: err.Error(), Err: err}
	}
	if err != nil {
		return nil, err
	}

	s.audit.Record("automation.run", map[string]interface{}{
		"type": automationType, "script": script, "parameters": params,
	}, res.Status, automationType+"/"+script, res.Error)
	if s.metrics != nil {
		s.metrics.AutomationRuns.WithLabelValues(automationType, script, res.Status).Inc()
	}
	return res, nil
}

// ListAudit returns the most recent audit entries.
func (s *Service) ListAudit(limit int) ([]models.AuditEntry, error) {
	return s.store.ListAudit(limit)
}

func subject(kind string, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}
