// Package planner derives plans from problem categories, materializes plan
// steps into tasks and aggregates tasks into dashboard views.
package planner

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidOffset is returned for due offsets that are not <integer><unit>.
var ErrInvalidOffset = errors.New("invalid due offset")

// Minutes per supported offset unit. "m" is plain minutes.
var unitMinutes = map[byte]int{
	'm': 1,
	'h': 60,
	'd': 1440,
	'w': 10080,
}

// OffsetMinutes parses a due offset such as "2h", "1d" or "1w" into minutes.
// A unit suffix is mandatory: "30" is rejected rather than read as 3 minutes.
func OffsetMinutes(s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	mult, ok := unitMinutes[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no unit (m, h, d, w)", ErrInvalidOffset, s)
	}
	num := s[:len(s)-1]
	for i := 0; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidOffset, s, err)
	}
	return n * mult, nil
}

// ParseDueOffset is OffsetMinutes expressed as a time.Duration.
func ParseDueOffset(s string) (time.Duration, error) {
	m, err := OffsetMinutes(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(m) * time.Minute, nil
}
