package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/session"
	"github.com/akyairhashvil/vrtimer/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

type testModel struct {
	m         Model
	db        *database.Database
	clock     *clockwork.FakeClock
	announcer *testutil.RecordingAnnouncer
}

func setupTestModel(t *testing.T, plan models.Plan) *testModel {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})

	tm := &testModel{
		db:        db,
		clock:     testutil.NewFakeClock(),
		announcer: &testutil.RecordingAnnouncer{},
	}
	tm.m = NewModel(ctx, Options{
		Announcer:       tm.announcer,
		Recorder:        db,
		Plans:           db,
		Clock:           tm.clock,
		SpeedMultiplier: 1,
		Plan:            plan,
		WorkoutMinutes:  1,
		BreakMinutes:    1,
	})
	return tm
}

func keyMsg(key string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"tab":       tea.KeyTab,
		"shift+tab": tea.KeyShiftTab,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEsc,
		"delete":    tea.KeyDelete,
		"ctrl+c":    tea.KeyCtrlC,
		" ":         tea.KeySpace,
	}
	if kt, ok := special[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func (tm *testModel) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := tm.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	tm.m = m
	return cmd
}

func (tm *testModel) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		tm.send(t, keyMsg(k))
	}
}

// fire advances the clock by d and delivers the tick armed for kind.
func (tm *testModel) fire(t *testing.T, kind session.TimerKind, d time.Duration) {
	t.Helper()
	id := tm.m.timers[kind]
	if id == 0 {
		t.Fatalf("expected an armed %s timer", kind)
	}
	tm.clock.Advance(d)
	tm.send(t, timerTickMsg{ID: id, Kind: kind})
}
