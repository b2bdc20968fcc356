package session

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source of the countdown. clockwork.Clock satisfies it.
// The real clock's Now carries a monotonic reading, so deltas between two
// calls are immune to wall-clock jumps.
type Clock interface {
	Now() time.Time
}

var _ Clock = clockwork.NewRealClock()
