package automation

import (
	"fmt"
	"time"
)

// Default working window for a generated schedule.
const (
	DefaultStartHour = 8
	DefaultEndHour   = 18
)

// Block categories.
const (
	BlockDeepWork      = "Deep Work"
	BlockBreak         = "Break"
	BlockCollaboration = "Collaboration"
	BlockWrapUp        = "Wrap-up"
)

// TimeBlock is one hour of a daily schedule.
type TimeBlock struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TaskType        string    `json:"task_type"`
	Priority        string    `json:"priority"`
	Task            string    `json:"task"`
}

// DailySchedule partitions a day's working window into one-hour blocks.
type DailySchedule struct {
	Date           string      `json:"date"`
	CreatedAt      time.Time   `json:"created_at"`
	StartHour      int         `json:"start_hour"`
	EndHour        int         `json:"end_hour"`
	TimeBlocks     []TimeBlock `json:"time_blocks"`
	TotalWorkHours int         `json:"total_work_hours"`
	DeepWorkBlocks int         `json:"deep_work_blocks"`
	BreakBlocks    int         `json:"break_blocks"`
	SavedTo        string      `json:"saved_to,omitempty"`
}

// blockFor labels the hour starting at h.
func blockFor(h int) (taskType, priority string) {
	switch {
	case h >= 8 && h < 12:
		return BlockDeepWork, "High"
	case h == 12:
		return BlockBreak, "Medium"
	case h >= 13 && h < 16:
		return BlockCollaboration, "Medium"
	default:
		return BlockWrapUp, "Low"
	}
}

// CreateDailySchedule builds the schedule for the calendar day of now,
// in now's location, covering [startHour, endHour).
func CreateDailySchedule(startHour, endHour int, now time.Time) (*DailySchedule, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("%w: need 0 <= start_hour < end_hour <= 24, got %d..%d",
			ErrInvalidParams, startHour, endHour)
	}

	y, m, d := now.Date()
	s := &DailySchedule{
		Date:           now.Format("2006-01-02"),
		CreatedAt:      now,
		StartHour:      startHour,
		EndHour:        endHour,
		TimeBlocks:     make([]TimeBlock, 0, endHour-startHour),
		TotalWorkHours: endHour - startHour,
	}
	for h := startHour; h < endHour; h++ {
		taskType, priority := blockFor(h)
		start := time.Date(y, m, d, h, 0, 0, 0, now.Location())
		s.TimeBlocks = append(s.TimeBlocks, TimeBlock{
			StartTime:       start,
			EndTime:         start.Add(time.Hour),
			DurationMinutes: 60,
			TaskType:        taskType,
			Priority:        priority,
			Task:            "Scheduled " + taskType + " time",
		})
		switch taskType {
		case BlockDeepWork:
			s.DeepWorkBlocks++
		case BlockBreak:
			s.BreakBlocks++
		}
	}
	return s, nil
}

// Focus timer defaults.
const (
	DefaultFocusMinutes = 25
	DefaultFocusTask    = "Focus Work"
)

// FocusTimer is a computed focus session. Nothing actually runs.
type FocusTimer struct {
	Task            string    `json:"task"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
}

// StartFocusTimer computes a focus session of minutes starting at now.
func StartFocusTimer(minutes int, task string, now time.Time) (*FocusTimer, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: minutes must be positive, got %d", ErrInvalidParams, minutes)
	}
	if task == "" {
		task = DefaultFocusTask
	}
	return &FocusTimer{
		Task:            task,
		StartTime:       now,
		EndTime:         now.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Status:          "running",
	}, nil
}
