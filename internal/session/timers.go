package session

import "time"

type TimerKind int

const (
	CountdownTimer TimerKind = iota
	ReminderTimer
)

func (k TimerKind) String() string {
	if k == ReminderTimer {
		return "reminder"
	}
	return "countdown"
}

// Timer is a handle for a repeating timer the controller wants driven.
// A zero ID means no timer. Each new timer gets a fresh ID, so a driver
// delivering a tick for a replaced handle is simply ignored.
type Timer struct {
	ID    uint64
	Kind  TimerKind
	Every time.Duration
}

func (t Timer) Active() bool { return t.ID != 0 }
