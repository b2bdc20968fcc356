package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/session"
	"github.com/akyairhashvil/vrtimer/internal/testutil"
	"github.com/akyairhashvil/vrtimer/internal/tui"
)

type testApp struct {
	app    *application
	out    *bytes.Buffer
	dbPath string
}

func setupTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Cleanup(func() { tui.SetTheme("default") })

	out := &bytes.Buffer{}
	return &testApp{
		app:    newApplication(context.Background(), strings.NewReader(stdin), out),
		out:    out,
		dbPath: filepath.Join(dir, "history.db"),
	}
}

func (ta *testApp) parse(t *testing.T, args ...string) error {
	t.Helper()
	args = append([]string{"--history", ta.dbPath}, args...)
	_, err := ta.app.commandLine().Parse(args)
	return err
}

func (ta *testApp) seed(t *testing.T, recs ...models.SessionRecord) {
	t.Helper()
	db, err := database.Open(context.Background(), ta.dbPath)
	require.NoError(t, err)
	defer db.Close()
	for _, rec := range recs {
		require.NoError(t, db.RecordSession(context.Background(), rec))
	}
}

func TestParseIntervals(t *testing.T) {
	got, err := parseIntervals([]string{"30:1", " 5 : 2 "})
	require.NoError(t, err)
	assert.Equal(t, testutil.NewIntervals().Add(30, 1).Add(5, 2).Build(), got)

	for _, bad := range []string{"30", "30:0", "a:1", "0:1", "-5:1"} {
		_, err := parseIntervals([]string{bad})
		assert.ErrorIs(t, err, errBadInterval, bad)
	}
}

func TestParseCommand(t *testing.T) {
	cases := map[string]session.Command{
		"p":      session.CommandTogglePause,
		" PAUSE": session.CommandTogglePause,
		"r":      session.CommandResume,
		"s":      session.CommandStop,
		"quit":   session.CommandStop,
	}
	for in, want := range cases {
		got, ok := parseCommand(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := parseCommand("jump")
	assert.False(t, ok)
}

func TestReadCommands(t *testing.T) {
	out := make(chan session.Command, 4)
	readCommands(context.Background(), strings.NewReader("p\nnope\ns\n"), out)
	close(out)

	var got []session.Command
	for cmd := range out {
		got = append(got, cmd)
	}
	assert.Equal(t, []session.Command{session.CommandTogglePause, session.CommandStop}, got)
}

func TestConsoleDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := &consoleDisplay{w: &buf}
	d.ShowCountdown("01:00")
	d.ShowCountdown("01:00")
	d.ShowStatus("Workout for 1 minute.")
	d.ShowCountdown("00:59")

	assert.Equal(t, "\r01:00\rWorkout for 1 minute.\n01:00\r00:59", buf.String())
}

func TestRunHeadlessCompletes(t *testing.T) {
	ta := setupTestApp(t, "")
	err := ta.parse(t, "--speed", "600", "--prep", "0", "--mute", "run", "--headless", "-i", "1:1")
	require.NoError(t, err)
	assert.Contains(t, ta.out.String(), config.StatusComplete)

	db, err := database.Open(context.Background(), ta.dbPath)
	require.NoError(t, err)
	defer db.Close()
	recs, err := db.RecentSessions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.OutcomeCompleted, recs[0].Outcome)
	assert.Equal(t, 600.0, recs[0].SpeedMultiplier)
}

func TestRunHeadlessEphemeral(t *testing.T) {
	ta := setupTestApp(t, "")
	err := ta.parse(t, "--speed", "600", "--prep", "0", "--mute", "--ephemeral", "run", "--headless", "-i", "1:1")
	require.NoError(t, err)

	db, err := database.Open(context.Background(), ta.dbPath)
	require.NoError(t, err)
	defer db.Close()
	stats, err := db.SessionStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Sessions)
}

func TestRunHeadlessNeedsIntervals(t *testing.T) {
	ta := setupTestApp(t, "")
	err := ta.parse(t, "--mute", "run", "--headless")
	assert.ErrorIs(t, err, session.ErrNoIntervals)
}

func TestRunHeadlessStopFromInput(t *testing.T) {
	ta := setupTestApp(t, "s\n")
	err := ta.parse(t, "--mute", "--prep", "0", "run", "--headless", "-i", "30:1")
	require.NoError(t, err)
	assert.Contains(t, ta.out.String(), config.PhraseStopped)
}

func TestPlanUsesSavedPlan(t *testing.T) {
	ta := setupTestApp(t, "")
	db, err := database.Open(context.Background(), ta.dbPath)
	require.NoError(t, err)
	defer db.Close()
	saved := models.Plan{PrepMinutes: 3, Intervals: testutil.NewIntervals().Add(10, 2).Build()}
	require.NoError(t, db.SavePlan(context.Background(), saved))

	plan, err := ta.app.plan(config.NewConfiguration(), db)
	require.NoError(t, err)
	assert.Equal(t, saved, plan)

	ta.app.intervals = []string{"5:1"}
	plan, err = ta.app.plan(config.NewConfiguration(), db)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPrepMinutes, plan.PrepMinutes)
	assert.Equal(t, testutil.NewIntervals().Add(5, 1).Build(), plan.Intervals)
}

func TestLoadSpeed(t *testing.T) {
	ta := setupTestApp(t, "")
	settings := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"timerSpeedMultiplier": 2.5}`), 0o600))

	cfg := config.NewConfiguration()
	cfg.SettingsSource = settings
	assert.Equal(t, 2.5, ta.app.loadSpeed(cfg))

	cfg.TestMode = true
	assert.Equal(t, config.TestSpeedMultiplier, ta.app.loadSpeed(cfg))

	cfg.SpeedMultiplier = 3
	assert.Equal(t, 3.0, ta.app.loadSpeed(cfg))
	cfg.SpeedMultiplier = 0

	cfg.SettingsSource = filepath.Join(t.TempDir(), "missing.json")
	assert.Equal(t, config.TestSpeedMultiplier, ta.app.loadSpeed(cfg))

	cfg.TestMode = false
	assert.Equal(t, config.DefaultSpeedMultiplier, ta.app.loadSpeed(cfg))
}

func TestLoadSpeedFromDefaultSource(t *testing.T) {
	ta := setupTestApp(t, "")
	cfg := config.NewConfiguration()
	assert.Equal(t, config.DefaultSpeedMultiplier, ta.app.loadSpeed(cfg))

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), config.AppName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFileName), []byte(`{"timerSpeedMultiplier": 2.5}`), 0o600))

	assert.Equal(t, 2.5, ta.app.loadSpeed(config.NewConfiguration()))

	cfg, err := ta.app.configuration()
	require.NoError(t, err)
	assert.Equal(t, 2.5, ta.app.loadSpeed(cfg))
}

func TestConfigurationFile(t *testing.T) {
	ta := setupTestApp(t, "")
	fn := filepath.Join(t.TempDir(), "configuration.yml")
	require.NoError(t, os.WriteFile(fn, []byte("theme: dracula\nworkoutMinutes: 45\n"), 0o600))

	_, err := ta.app.commandLine().Parse([]string{"-c", fn, "--workout", "20", "history"})
	require.NoError(t, err)
	cfg, err := ta.app.configuration()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.WorkoutMinutes)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, "Dracula", tui.CurrentTheme.Name)
}

func TestExplicitConfigurationMustExist(t *testing.T) {
	ta := setupTestApp(t, "")
	err := ta.parse(t, "-c", filepath.Join(t.TempDir(), "missing.yml"), "history")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	ta := setupTestApp(t, "")
	require.NoError(t, ta.parse(t, "history"))
	assert.Contains(t, ta.out.String(), "No sessions recorded yet.")

	ta.out.Reset()
	ta.seed(t,
		testutil.NewSessionRecord().Build(),
		testutil.NewSessionRecord().
			WithOutcome(models.OutcomeStopped).
			WithStart(time.Date(2026, 3, 15, 7, 0, 0, 0, time.UTC), 10*time.Minute).
			WithIntervals(testutil.NewIntervals().Add(30, 1).Build(), 0).
			Build(),
	)
	require.NoError(t, ta.parse(t, "history", "--limit", "1"))
	out := ta.out.String()
	assert.Contains(t, out, "STARTED")
	assert.Contains(t, out, "stopped")
	assert.NotContains(t, out, "completed ")
	assert.Contains(t, out, "2 sessions (1 completed, 1 stopped), 30m of workouts.")

	ta.out.Reset()
	require.NoError(t, ta.parse(t, "history", "--clear"))
	assert.Contains(t, ta.out.String(), "History cleared.")
	ta.out.Reset()
	require.NoError(t, ta.parse(t, "history"))
	assert.Contains(t, ta.out.String(), "No sessions recorded yet.")
}

func TestReportCommand(t *testing.T) {
	ta := setupTestApp(t, "")
	ta.seed(t, testutil.NewSessionRecord().Build())
	out := filepath.Join(t.TempDir(), "reports", "report.pdf")

	require.NoError(t, ta.parse(t, "report", "--out", out))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Contains(t, ta.out.String(), out)
}
