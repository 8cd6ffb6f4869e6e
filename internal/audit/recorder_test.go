package audit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fentz26/lifehack/internal/models"
)

type fakeWriter struct {
	entries []models.AuditEntry
	err     error
}

func (f *fakeWriter) WriteAudit(action, inputsHash, outcome, subject, details string) (*models.AuditEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e := models.AuditEntry{Action: action, InputsHash: inputsHash, Outcome: outcome, Subject: subject, Details: details}
	f.entries = append(f.entries, e)
	return &e, nil
}

func TestRecorder_Record(t *testing.T) {
	w := &fakeWriter{}
	r := NewRecorder(w, nil)

	entry := r.Record("task.complete", map[string]int64{"task_id": 4}, "success", "task:4", "")

	require.NotNil(t, entry)
	require.Len(t, w.entries, 1)
	assert.Equal(t, "task.complete", w.entries[0].Action)
	assert.Equal(t, HashInputs(map[string]int64{"task_id": 4}), w.entries[0].InputsHash)
	assert.Len(t, w.entries[0].InputsHash, 64)
}

func TestRecorder_WriteFailureIsSwallowed(t *testing.T) {
	r := NewRecorder(&fakeWriter{err: errors.New("disk full")}, nil)
	assert.Nil(t, r.Record("x", nil, "success", "", ""))
}

func TestHashInputs(t *testing.T) {
	assert.Equal(t, HashInputs(map[string]string{"a": "b"}), HashInputs(map[string]string{"a": "b"}))
	assert.NotEqual(t, HashInputs(map[string]string{"a": "b"}), HashInputs(map[string]string{"a": "c"}))
	assert.Equal(t, "hash_error", HashInputs(make(chan int)))
}
