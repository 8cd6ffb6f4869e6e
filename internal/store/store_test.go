package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fentz26/lifehack/internal/models"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 2; i++ {
		s, err := New(dbPath)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestSeedSampleProblems(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	n, err := s.SeedSampleProblems()
	if err != nil {
		t.Fatalf("SeedSampleProblems failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 seeded problems, got %d", n)
	}

	// Second call must not duplicate
	n, err = s.SeedSampleProblems()
	if err != nil {
		t.Fatalf("SeedSampleProblems failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected no problems seeded on second call, got %d", n)
	}

	problems, _ := s.ListProblems()
	if len(problems) != 3 {
		t.Fatalf("Expected 3 problems, got %d", len(problems))
	}
	if problems[2].Category != "finance" {
		t.Errorf("Expected third sample to be finance, got %s", problems[2].Category)
	}
	if problems[0].Description == nil || *problems[0].Description != "Save time and money on groceries" {
		t.Errorf("Unexpected description: %v", problems[0].Description)
	}
}

func TestProblemCRUD(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	p, err := s.CreateProblem("Plan my week", "productivity", nil)
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	if p.ID == 0 {
		t.Error("Problem ID should be assigned")
	}

	got, err := s.GetProblem(p.ID)
	if err != nil {
		t.Fatalf("GetProblem failed: %v", err)
	}
	if got.Title != "Plan my week" {
		t.Errorf("Expected title 'Plan my week', got %s", got.Title)
	}
	if got.Description != nil {
		t.Errorf("Expected nil description, got %q", *got.Description)
	}

	missing, err := s.GetProblem(999)
	if err != nil {
		t.Fatalf("GetProblem failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown problem")
	}
}

func TestPlanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	p, _ := s.CreateProblem("Groceries", "shopping", nil)
	generated := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	plan, err := s.CreatePlan(models.Plan{
		ProblemID:   p.ID,
		GeneratedAt: generated,
		Summary:     "summary",
		Steps: []models.PlanStep{
			{StepID: 2, Title: "second", Details: "d2", DueOffset: "1h"},
			{StepID: 1, Title: "first", Details: "d1", DueOffset: "0h"},
		},
	})
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	got, err := s.GetPlan(plan.ID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.ProblemID != p.ID || got.Summary != "summary" {
		t.Errorf("Unexpected plan: %+v", got)
	}
	if !got.GeneratedAt.Equal(generated) {
		t.Errorf("Expected generated_at %v, got %v", generated, got.GeneratedAt)
	}
	if len(got.Steps) != 2 || got.Steps[0].StepID != 1 || got.Steps[1].DueOffset != "1h" {
		t.Errorf("Steps not returned in step order: %+v", got.Steps)
	}

	s.CreatePlan(models.Plan{ProblemID: p.ID, GeneratedAt: generated, Summary: "again"})
	plans, err := s.ListPlansForProblem(p.ID)
	if err != nil {
		t.Fatalf("ListPlansForProblem failed: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("Expected 2 plans, got %d", len(plans))
	}
	if len(plans[0].Steps) != 2 || len(plans[1].Steps) != 0 {
		t.Errorf("Unexpected step counts: %d, %d", len(plans[0].Steps), len(plans[1].Steps))
	}

	missing, _ := s.GetPlan(12345)
	if missing != nil {
		t.Error("Expected nil for unknown plan")
	}
}

func TestCreatePlan_UnknownProblem(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	if _, err := s.CreatePlan(models.Plan{ProblemID: 42, Summary: "x", GeneratedAt: time.Now()}); err == nil {
		t.Error("Expected foreign key violation for unknown problem")
	}
}

func TestTaskBatch(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	planID := newTestPlan(t, s)

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	drafts := []models.Task{
		{PlanID: planID, Title: "a", DueAt: base, CreatedAt: base},
		{PlanID: planID, Title: "b", DueAt: base.Add(time.Hour), CreatedAt: base},
		{PlanID: planID, Title: "c", DueAt: base.Add(2 * time.Hour), CreatedAt: base},
	}

	created, err := s.CreateTasks(drafts)
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}
	for i := 1; i < len(created); i++ {
		if created[i].ID <= created[i-1].ID {
			t.Errorf("IDs not increasing: %d then %d", created[i-1].ID, created[i].ID)
		}
	}
	if created[0].Status != models.TaskStatusPending {
		t.Errorf("Expected default status pending, got %s", created[0].Status)
	}

	tasks, err := s.ListTasksForPlan(planID)
	if err != nil {
		t.Fatalf("ListTasksForPlan failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	if !tasks[2].DueAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("Due time not preserved: %v", tasks[2].DueAt)
	}
}

func TestTaskBatch_RollsBack(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	planID := newTestPlan(t, s)

	now := time.Now()
	_, err := s.CreateTasks([]models.Task{
		{PlanID: planID, Title: "ok", DueAt: now, CreatedAt: now},
		{PlanID: 9999, Title: "bad plan", DueAt: now, CreatedAt: now},
	})
	if err == nil {
		t.Fatal("Expected error for unknown plan")
	}

	tasks, _ := s.ListTasks("")
	if len(tasks) != 0 {
		t.Errorf("Expected rollback to leave no tasks, got %d", len(tasks))
	}
}

func TestTaskStatusAndDelete(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	planID := newTestPlan(t, s)

	now := time.Now()
	task, err := s.CreateTask(models.Task{PlanID: planID, Title: "t", DueAt: now, CreatedAt: now})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	done := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	ok, err := s.UpdateTaskStatus(task.ID, models.TaskStatusCompleted, &done)
	if err != nil || !ok {
		t.Fatalf("UpdateTaskStatus failed: ok=%v err=%v", ok, err)
	}

	got, _ := s.GetTask(task.ID)
	if got.Status != models.TaskStatusCompleted {
		t.Errorf("Expected status completed, got %s", got.Status)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("Expected completed_at %v, got %v", done, got.CompletedAt)
	}

	// List with filter
	tasks, _ := s.ListTasks(models.TaskStatusCompleted)
	if len(tasks) != 1 {
		t.Errorf("Expected 1 completed task, got %d", len(tasks))
	}
	tasks, _ = s.ListTasks(models.TaskStatusPending)
	if len(tasks) != 0 {
		t.Errorf("Expected 0 pending tasks, got %d", len(tasks))
	}

	s.UpdateTaskStatus(task.ID, models.TaskStatusInProgress, nil)
	got, _ = s.GetTask(task.ID)
	if got.CompletedAt != nil {
		t.Error("Expected completed_at to be cleared")
	}

	ok, _ = s.UpdateTaskStatus(777, models.TaskStatusPending, nil)
	if ok {
		t.Error("Expected update of unknown task to report false")
	}

	ok, err = s.DeleteTask(task.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteTask failed: ok=%v err=%v", ok, err)
	}
	if got, _ := s.GetTask(task.ID); got != nil {
		t.Error("Expected task to be gone")
	}
	ok, _ = s.DeleteTask(task.ID)
	if ok {
		t.Error("Expected second delete to report false")
	}
}

func TestAudit(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	first, err := s.WriteAudit("problem.create", "hash1", "success", "problem:1", "")
	if err != nil {
		t.Fatalf("WriteAudit failed: %v", err)
	}
	if first.ID == "" {
		t.Error("Audit ID should not be empty")
	}
	s.WriteAudit("plan.generate", "hash2", "success", "plan:1", "6 steps")

	entries, err := s.ListAudit(10)
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "plan.generate" {
		t.Errorf("Expected newest entry first, got %s", entries[0].Action)
	}

	entries, _ = s.ListAudit(1)
	if len(entries) != 1 {
		t.Errorf("Expected limit to apply, got %d", len(entries))
	}
}

func newTestStore(t *testing.T) *Store {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func newTestPlan(t *testing.T, s *Store) int64 {
	p, err := s.CreateProblem("Test problem", "general", nil)
	if err != nil {
		t.Fatalf("CreateProblem failed: %v", err)
	}
	plan, err := s.CreatePlan(models.Plan{ProblemID: p.ID, Summary: "s", GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	return plan.ID
}
