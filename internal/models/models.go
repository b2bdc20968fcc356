package models

import (
	"fmt"
	"time"
)

// Phase is the current stage of a running session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrep
	PhaseWorkout
	PhaseBreak
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrep:
		return "prep"
	case PhaseWorkout:
		return "workout"
	case PhaseBreak:
		return "break"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Label is the capitalized phase name used in status lines.
func (p Phase) Label() string {
	switch p {
	case PhasePrep:
		return "Prep"
	case PhaseWorkout:
		return "Workout"
	case PhaseBreak:
		return "Break"
	case PhaseComplete:
		return "Complete"
	default:
		return "Idle"
	}
}

// IntervalSpec is one configured workout/break pair. Both durations are whole minutes.
type IntervalSpec struct {
	WorkoutMinutes int `json:"workout"`
	BreakMinutes   int `json:"break"`
}

// Valid reports whether both durations are positive.
func (s IntervalSpec) Valid() bool {
	return s.WorkoutMinutes > 0 && s.BreakMinutes > 0
}

// Outcome records how a session ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeStopped   Outcome = "stopped"
)

// SessionRecord is a finished (or stopped) session kept in the history.
type SessionRecord struct {
	ID                 int64
	StartedAt          time.Time
	EndedAt            time.Time
	Outcome            Outcome
	PrepMinutes        int
	Intervals          []IntervalSpec
	IntervalsCompleted int
	SpeedMultiplier    float64
}

// PlannedMinutes is the configured length of the session including prep.
func (r SessionRecord) PlannedMinutes() int {
	total := r.PrepMinutes
	for i, iv := range r.Intervals {
		total += iv.WorkoutMinutes
		if i < len(r.Intervals)-1 {
			total += iv.BreakMinutes
		}
	}
	return total
}

// Duration is the wall-clock time the session ran for.
func (r SessionRecord) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Plan is the interval list and prep selection remembered between runs.
type Plan struct {
	PrepMinutes int
	Intervals   []IntervalSpec
}
