package session

import (
	"fmt"
	"time"
)

// Mode is one of the three pomodoro phases.
type Mode string

const (
	Focus      Mode = "focus"
	ShortBreak Mode = "shortBreak"
	LongBreak  Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{Focus, ShortBreak, LongBreak}

func (m Mode) Valid() bool {
	switch m {
	case Focus, ShortBreak, LongBreak:
		return true
	}
	return false
}

func (m Mode) Label() string {
	switch m {
	case Focus:
		return "Focus"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	}
	return string(m)
}

// ParseMode accepts the wire names plus the short aliases used on the command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus", "f":
		return Focus, nil
	case "shortBreak", "short", "s":
		return ShortBreak, nil
	case "longBreak", "long", "l":
		return LongBreak, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Record is one run-to-completion of a timer phase. It is built exactly once,
// handed to the recorder and never mutated afterwards.
type Record struct {
	ID               string     `json:"id,omitempty"`
	Mode             Mode       `json:"mode" validate:"required,oneof=focus shortBreak longBreak"`
	Duration         int        `json:"duration" validate:"required,gt=0,lte=300"`
	Completed        bool       `json:"completed"`
	StartTime        time.Time  `json:"startTime" validate:"required"`
	EndTime          *time.Time `json:"endTime,omitempty"`
	PausedDuration   int64      `json:"pausedDuration" validate:"gte=0"`
	ThoughtsCaptured int        `json:"thoughtsCaptured" validate:"gte=0"`
}

// CountsAsFocus reports whether the record moves the focus counters.
func (r Record) CountsAsFocus() bool {
	return r.Completed && r.Mode == Focus
}
