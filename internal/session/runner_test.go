package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/testutil"
)

func setupTestRunner(t *testing.T, opts Options) (*Runner, *testutil.RecordingAnnouncer) {
	t.Helper()
	announcer := &testutil.RecordingAnnouncer{}
	opts.Announcer = announcer
	c := NewController(context.Background(), opts)
	return NewRunner(c), announcer
}

func TestRunnerCompletesSession(t *testing.T) {
	r, announcer := setupTestRunner(t, Options{
		SpeedMultiplier: 600,
		Intervals:       testutil.NewIntervals().Add(1, 1).Add(1, 1).Build(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if announcer.Count(config.PhraseDone) != 1 {
		t.Fatalf("phrases = %v", announcer.Phrases())
	}
	if r.controller.Snapshot().Running {
		t.Fatalf("session still running")
	}
}

func TestRunnerRejectsEmptyList(t *testing.T) {
	r, _ := setupTestRunner(t, Options{})
	if err := r.Run(context.Background()); !errors.Is(err, ErrNoIntervals) {
		t.Fatalf("Run err = %v", err)
	}
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := NewMockRecorder(ctrl)
	recorder.EXPECT().
		RecordSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.SessionRecord) error {
			if rec.Outcome != models.OutcomeStopped {
				t.Errorf("outcome = %s, want stopped", rec.Outcome)
			}
			return nil
		})

	r, announcer := setupTestRunner(t, Options{
		Recorder:  recorder,
		Intervals: testutil.NewIntervals().Add(30, 1).Build(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := r.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run err = %v", err)
	}
	if announcer.Last() != config.PhraseStopped {
		t.Fatalf("last phrase = %q", announcer.Last())
	}
}

func TestRunnerAppliesCommands(t *testing.T) {
	r, announcer := setupTestRunner(t, Options{
		Intervals: testutil.NewIntervals().Add(30, 1).Build(),
	})
	r.Commands() <- CommandPause
	r.Commands() <- CommandPause
	r.Commands() <- CommandStop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if announcer.Count(config.PhrasePauseReminder) != 1 {
		t.Fatalf("phrases = %v", announcer.Phrases())
	}
	if announcer.Last() != config.PhraseStopped {
		t.Fatalf("last phrase = %q", announcer.Last())
	}
}

func TestCommandString(t *testing.T) {
	cases := map[Command]string{
		CommandPause:       "pause",
		CommandResume:      "resume",
		CommandTogglePause: "toggle-pause",
		CommandStop:        "stop",
		Command(42):        "unknown",
	}
	for cmd, want := range cases {
		if got := cmd.String(); got != want {
			t.Fatalf("Command(%d).String() = %q, want %q", int(cmd), got, want)
		}
	}
}
