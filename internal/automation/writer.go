package automation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SnapshotWriter persists automation outputs as indented JSON files.
type SnapshotWriter struct {
	Dir string
}

// NewSnapshotWriter creates a writer rooted at dir. The directory is
// created on first write.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{Dir: dir}
}

// WriteBudget saves s as budget_snapshot_YYYYMMDD_HHMMSS.json and records
// the path in s.SavedTo.
func (w *SnapshotWriter) WriteBudget(s *BudgetSnapshot, now time.Time) (string, error) {
	name := fmt.Sprintf("budget_snapshot_%s.json", now.Format("20060102_150405"))
	path, err := w.write(name, s, func(p string) { s.SavedTo = p })
	if err != nil {
		return "", fmt.Errorf("write budget snapshot: %w", err)
	}
	return path, nil
}

// WriteSchedule saves s as daily_schedule_YYYYMMDD.json and records the
// path in s.SavedTo.
func (w *SnapshotWriter) WriteSchedule(s *DailySchedule, now time.Time) (string, error) {
	name := fmt.Sprintf("daily_schedule_%s.json", now.Format("20060102"))
	path, err := w.write(name, s, func(p string) { s.SavedTo = p })
	if err != nil {
		return "", fmt.Errorf("write daily schedule: %w", err)
	}
	return path, nil
}

func (w *SnapshotWriter) write(name string, v interface{}, setPath func(string)) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	path := filepath.Join(w.Dir, name)
	setPath(path)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		setPath("")
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		setPath("")
		return "", err
	}
	return path, nil
}
