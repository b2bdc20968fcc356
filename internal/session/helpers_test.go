package session

import (
	"context"
	"testing"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/testutil"
	"github.com/jonboulle/clockwork"
)

type harness struct {
	c           *Controller
	clock       *clockwork.FakeClock
	announcer   *testutil.RecordingAnnouncer
	display     *testutil.RecordingDisplay
	transitions []Transition
}

func setupTestController(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		clock:     testutil.NewFakeClock(),
		announcer: &testutil.RecordingAnnouncer{},
		display:   &testutil.RecordingDisplay{},
	}
	opts.Clock = h.clock
	opts.Announcer = h.announcer
	opts.Display = h.display
	opts.Observer = func(tr Transition) {
		h.transitions = append(h.transitions, tr)
	}
	h.c = NewController(context.Background(), opts)
	return h
}

func (h *harness) timer(kind TimerKind) Timer {
	for _, t := range h.c.Timers() {
		if t.Kind == kind {
			return t
		}
	}
	return Timer{}
}

// advance delivers countdown ticks at the timer cadence for d of real time.
// It returns early once no countdown is active.
func (h *harness) advance(d time.Duration) {
	for d > 0 {
		t := h.timer(CountdownTimer)
		if !t.Active() {
			return
		}
		step := t.Every
		if step > d {
			step = d
		}
		h.clock.Advance(step)
		h.c.Tick(t.ID)
		d -= step
	}
}

// finishPhase ticks until the phase changes and returns the real time it took.
func (h *harness) finishPhase(t *testing.T) time.Duration {
	t.Helper()
	start := h.c.Snapshot()
	seen := len(h.transitions)
	var elapsed time.Duration
	for len(h.transitions) == seen {
		timer := h.timer(CountdownTimer)
		if !timer.Active() {
			t.Fatalf("no countdown active in phase %s", start.Phase)
		}
		if elapsed > 3*time.Hour {
			t.Fatalf("phase %s did not finish", start.Phase)
		}
		h.clock.Advance(timer.Every)
		h.c.Tick(timer.ID)
		elapsed += timer.Every
	}
	return elapsed
}

func (h *harness) phases() []models.Phase {
	out := make([]models.Phase, 0, len(h.transitions))
	for _, tr := range h.transitions {
		out = append(out, tr.To)
	}
	return out
}

func samePhases(a, b []models.Phase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
