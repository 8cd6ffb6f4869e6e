package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownScript is returned for automation type/script pairs outside the catalog.
var ErrUnknownScript = errors.New("unknown automation script")

var errNoWriter = errors.New("no data directory configured for snapshot files")

// Execution statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Script describes one entry of the automation catalog.
type Script struct {
	Type        string `json:"type"`
	Name        string `json:"script"`
	Description string `json:"description"`
}

var catalog = []Script{
	{Type: "budget", Name: "create_snapshot", Description: "Split a monthly income into a budget snapshot"},
	{Type: "budget", Name: "analyze", Description: "Review a budget snapshot against recommended limits"},
	{Type: "productivity", Name: "create_schedule", Description: "Partition the working day into one-hour blocks"},
	{Type: "productivity", Name: "focus_timer", Description: "Compute a focus session window"},
}

// Catalog lists the available scripts.
func Catalog() []Script {
	out := make([]Script, len(catalog))
	copy(out, catalog)
	return out
}

func lookup(automationType, name string) (Script, bool) {
	for _, s := range catalog {
		if s.Type == automationType && s.Name == name {
			return s, true
		}
	}
	return Script{}, false
}

// ExecutionResult is the structured record of a script run. Failures are
// reported here rather than returned as errors.
type ExecutionResult struct {
	AutomationType string                 `json:"automation_type"`
	ScriptName     string                 `json:"script_name"`
	Parameters     map[string]interface{} `json:"parameters"`
	Result         interface{}            `json:"result,omitempty"`
	Error          string                 `json:"error,omitempty"`
	Status         string                 `json:"status"`
	ExecutedAt     time.Time              `json:"executed_at"`
}

// Runner executes catalog scripts.
type Runner struct {
	writer *SnapshotWriter
	now    func() time.Time
	logger *zap.Logger
}

// NewRunner creates a runner. A nil clock uses time.Now; a nil logger discards.
func NewRunner(writer *SnapshotWriter, clock func() time.Time, logger *zap.Logger) *Runner {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{writer: writer, now: clock, logger: logger.Named("automation")}
}

// Run executes automationType/script with params. Only an unknown script
// yields an error; script failures come back as a failed ExecutionResult.
func (r *Runner) Run(ctx context.Context, automationType, script string, params map[string]interface{}) (*ExecutionResult, error) {
	if _, ok := lookup(automationType, script); !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownScript, automationType, script)
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	res := &ExecutionResult{
		AutomationType: automationType,
		ScriptName:     script,
		Parameters:     params,
	}

	out, err := r.execute(ctx, automationType+"/"+script, params)
	res.ExecutedAt = r.now()
	if err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
		r.logger.Warn("automation failed",
			zap.String("type", automationType),
			zap.String("script", script),
			zap.Error(err),
		)
		return res, nil
	}

	res.Status = StatusSuccess
	res.Result = out
	r.logger.Info("automation executed",
		zap.String("type", automationType),
		zap.String("script", script),
	)
	return res, nil
}

func (r *Runner) execute(ctx context.Context, key string, params map[string]interface{}) (out interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("script panicked: %v", p)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := r.now()
	switch key {
	case "budget/create_snapshot":
		var p struct {
			Income     *float64 `json:"income"`
			SaveToFile bool     `json:"save_to_file"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		snap, err := CreateBudgetSnapshot(orFloat(p.Income, DefaultIncome), now)
		if err != nil {
			return nil, err
		}
		if p.SaveToFile {
			if r.writer == nil {
				return nil, errNoWriter
			}
			if _, err := r.writer.WriteBudget(snap, now); err != nil {
				return nil, err
			}
		}
		return snap, nil

	case "budget/analyze":
		var p struct {
			Income   *float64        `json:"income"`
			Snapshot *BudgetSnapshot `json:"snapshot"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		snap := p.Snapshot
		if snap == nil {
			if snap, err = CreateBudgetSnapshot(orFloat(p.Income, DefaultIncome), now); err != nil {
				return nil, err
			}
		} else if !(snap.Income > 0) {
			return nil, fmt.Errorf("%w: snapshot income must be positive", ErrInvalidParams)
		}
		return AnalyzeBudget(*snap, now), nil

	case "productivity/create_schedule":
		var p struct {
			StartHour  *int `json:"start_hour"`
			EndHour    *int `json:"end_hour"`
			SaveToFile bool `json:"save_to_file"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		sched, err := CreateDailySchedule(orInt(p.StartHour, DefaultStartHour), orInt(p.EndHour, DefaultEndHour), now)
		if err != nil {
			return nil, err
		}
		if p.SaveToFile {
			if r.writer == nil {
				return nil, errNoWriter
			}
			if _, err := r.writer.WriteSchedule(sched, now); err != nil {
				return nil, err
			}
		}
		return sched, nil

	case "productivity/focus_timer":
		var p struct {
			Minutes *int   `json:"minutes"`
			Task    string `json:"task"`
		}
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return StartFocusTimer(orInt(p.Minutes, DefaultFocusMinutes), p.Task, now)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScript, key)
}

// decodeParams maps a loose parameter object onto a typed struct.
func decodeParams(params map[string]interface{}, v interface{}) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
