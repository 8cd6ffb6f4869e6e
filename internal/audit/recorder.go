// Package audit records state-mutating actions for lifehack.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/fentz26/lifehack/internal/models"
	"go.uber.org/zap"
)

// Writer persists audit entries.
type Writer interface {
	WriteAudit(action, inputsHash, outcome, subject, details string) (*models.AuditEntry, error)
}

// Recorder writes audit entries for mutating operations.
type Recorder struct {
	w      Writer
	logger *zap.Logger
}

// NewRecorder creates a new audit recorder.
func NewRecorder(w Writer, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{w: w, logger: logger.Named("audit")}
}

// Record writes an entry. Write failures are logged and swallowed so an
// audit problem never fails the operation being audited.
func (r *Recorder) Record(action string, inputs interface{}, outcome, subject, details string) *models.AuditEntry {
	entry, err := r.w.WriteAudit(action, HashInputs(inputs), outcome, subject, details)
	if err != nil {
		r.logger.Error("write audit entry",
			zap.String("action", action),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return nil
	}
	return entry
}

// HashInputs creates a SHA256 hash of the inputs for reproducibility.
func HashInputs(inputs interface{}) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
