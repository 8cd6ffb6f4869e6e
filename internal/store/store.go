// Package store provides SQLite-backed persistence for lifehack.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fentz26/lifehack/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store provides access to the lifehack SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer at a time
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS problems (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		problem_id INTEGER NOT NULL,
		summary TEXT NOT NULL,
		generated_at DATETIME NOT NULL,
		FOREIGN KEY (problem_id) REFERENCES problems(id)
	);

	CREATE TABLE IF NOT EXISTS plan_steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id INTEGER NOT NULL,
		step_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		details TEXT NOT NULL,
		due_offset TEXT NOT NULL,
		UNIQUE (plan_id, step_id),
		FOREIGN KEY (plan_id) REFERENCES plans(id)
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		plan_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		due_at DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		completed_at DATETIME,
		FOREIGN KEY (plan_id) REFERENCES plans(id)
	);

	CREATE TABLE IF NOT EXISTS audit (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		inputs_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		subject TEXT,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_problem_id ON plans(problem_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_plan_id ON tasks(plan_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// sampleProblems are inserted into an empty database by SeedSampleProblems.
var sampleProblems = []struct {
	title, category, description string
}{
	{"Weekly grocery shopping optimization", "shopping", "Save time and money on groceries"},
	{"Daily productivity routine", "productivity", "Establish a morning routine for better productivity"},
	{"Monthly budget planning", "finance", "Create and stick to a personal budget"},
}

// SeedSampleProblems inserts the sample problems when no problems exist yet.
// It returns the number of problems inserted.
func (s *Store) SeedSampleProblems() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM problems`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count problems: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, p := range sampleProblems {
		desc := p.description
		if _, err := s.CreateProblem(p.title, p.category, &desc); err != nil {
			return 0, err
		}
	}
	return len(sampleProblems), nil
}

// --- Problem Operations ---

// CreateProblem inserts a new problem.
func (s *Store) CreateProblem(title, category string, description *string) (*models.Problem, error) {
	p := &models.Problem{
		Title:       title,
		Category:    category,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := s.db.Exec(
		`INSERT INTO problems (title, category, description, created_at) VALUES (?, ?, ?, ?)`,
		p.Title, p.Category, nullString(description), p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert problem: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("problem id: %w", err)
	}
	return p, nil
}

// GetProblem retrieves a problem by ID.
func (s *Store) GetProblem(id int64) (*models.Problem, error) {
	p := &models.Problem{}
	var desc sql.NullString

	err := s.db.QueryRow(
		`SELECT id, title, category, description, created_at FROM problems WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Title, &p.Category, &desc, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query problem: %w", err)
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	return p, nil
}

// ListProblems returns all problems in creation order.
func (s *Store) ListProblems() ([]models.Problem, error) {
	rows, err := s.db.Query(`SELECT id, title, category, description, created_at FROM problems ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		var p models.Problem
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &desc, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		if desc.Valid {
			d := desc.String
			p.Description = &d
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// --- Plan Operations ---

// CreatePlan inserts a plan and its steps in one transaction.
func (s *Store) CreatePlan(plan models.Plan) (*models.Plan, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO plans (problem_id, summary, generated_at) VALUES (?, ?, ?)`,
		plan.ProblemID, plan.Summary, plan.GeneratedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	if plan.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("plan id: %w", err)
	}

	for _, step := range plan.Steps {
		_, err := tx.Exec(
			`INSERT INTO plan_steps (plan_id, step_id, title, details, due_offset) VALUES (?, ?, ?, ?, ?)`,
			plan.ID, step.StepID, step.Title, step.Details, step.DueOffset,
		)
		if err != nil {
			return nil, fmt.Errorf("insert plan step %d: %w", step.StepID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit plan: %w", err)
	}
	return &plan, nil
}

// GetPlan retrieves a plan with its steps in step order.
func (s *Store) GetPlan(id int64) (*models.Plan, error) {
	plan := &models.Plan{}
	err := s.db.QueryRow(
		`SELECT id, problem_id, summary, generated_at FROM plans WHERE id = ?`,
		id,
	).Scan(&plan.ID, &plan.ProblemID, &plan.Summary, &plan.GeneratedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query plan: %w", err)
	}

	if plan.Steps, err = s.planSteps(id); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPlansForProblem returns every plan generated for a problem, oldest first.
func (s *Store) ListPlansForProblem(problemID int64) ([]models.Plan, error) {
	rows, err := s.db.Query(
		`SELECT id, problem_id, summary, generated_at FROM plans WHERE problem_id = ? ORDER BY id`,
		problemID,
	)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}

	var plans []models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.ProblemID, &p.Summary, &p.GeneratedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Steps are loaded after the cursor is closed; the pool holds one connection.
	for i := range plans {
		if plans[i].Steps, err = s.planSteps(plans[i].ID); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (s *Store) planSteps(planID int64) ([]models.PlanStep, error) {
	rows, err := s.db.Query(
		`SELECT step_id, title, details, due_offset FROM plan_steps WHERE plan_id = ? ORDER BY step_id`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("query plan steps: %w", err)
	}
	defer rows.Close()

	steps := []models.PlanStep{}
	for rows.Next() {
		var st models.PlanStep
		if err := rows.Scan(&st.StepID, &st.Title, &st.Details, &st.DueOffset); err != nil {
			return nil, fmt.Errorf("scan plan step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// --- Task Operations ---

const taskColumns = `id, plan_id, title, due_at, status, created_at, completed_at`

// CreateTasks inserts tasks in one transaction. IDs are assigned in input
// order and written back into the returned slice.
func (s *Store) CreateTasks(tasks []models.Task) ([]models.Task, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO tasks (plan_id, title, due_at, status, created_at, completed_at) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("prepare task insert: %w", err)
	}
	defer stmt.Close()

	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.Status == "" {
			t.Status = models.TaskStatusPending
		}
		t.DueAt = t.DueAt.UTC()
		t.CreatedAt = t.CreatedAt.UTC()

		res, err := stmt.Exec(t.PlanID, t.Title, t.DueAt, t.Status, t.CreatedAt, nullTime(t.CompletedAt))
		if err != nil {
			return nil, fmt.Errorf("insert task: %w", err)
		}
		if t.ID, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("task id: %w", err)
		}
		out[i] = t
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tasks: %w", err)
	}
	return out, nil
}

// CreateTask inserts a single task.
func (s *Store) CreateTask(task models.Task) (*models.Task, error) {
	created, err := s.CreateTasks([]models.Task{task})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(id int64) (*models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}

// ListTasks returns all tasks, optionally filtered by status.
func (s *Store) ListTasks(status models.TaskStatus) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []interface{}

	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	return s.queryTasks(query, args...)
}

// ListTasksForPlan returns the tasks of one plan in ID order.
func (s *Store) ListTasksForPlan(planID int64) ([]models.Task, error) {
	return s.queryTasks(`SELECT `+taskColumns+` FROM tasks WHERE plan_id = ? ORDER BY id`, planID)
}

func (s *Store) queryTasks(query string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// UpdateTaskStatus sets the status and completion time of a task.
// It reports false if no task has the given ID.
func (s *Store) UpdateTaskStatus(id int64, status models.TaskStatus, completedAt *time.Time) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?`,
		status, nullTime(completedAt), id,
	)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return n > 0, nil
}

// DeleteTask removes a task. It reports false if no task has the given ID.
func (s *Store) DeleteTask(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(r rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var completedAt sql.NullTime
	if err := r.Scan(&task.ID, &task.PlanID, &task.Title, &task.DueAt, &task.Status, &task.CreatedAt, &completedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return task, nil
}

// --- Audit Operations ---

// WriteAudit writes an audit entry.
func (s *Store) WriteAudit(action, inputsHash, outcome, subject, details string) (*models.AuditEntry, error) {
	entry := &models.AuditEntry{
		ID:         uuid.New().String(),
		Action:     action,
		InputsHash: inputsHash,
		Outcome:    outcome,
		Subject:    subject,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO audit (id, action, inputs_hash, outcome, subject, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Action, entry.InputsHash, entry.Outcome, entry.Subject, entry.Details, entry.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert audit: %w", err)
	}
	return entry, nil
}

// ListAudit returns the most recent audit entries, newest first.
func (s *Store) ListAudit(limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, action, inputs_hash, outcome, subject, details, timestamp FROM audit ORDER BY rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var subject, details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.InputsHash, &e.Outcome, &subject, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		e.Subject = subject.String
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
