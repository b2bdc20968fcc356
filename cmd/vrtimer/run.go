package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/echocat/slf4g"
	"github.com/jonboulle/clockwork"
	"golang.org/x/term"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/session"
	"github.com/akyairhashvil/vrtimer/internal/tui"
	"github.com/akyairhashvil/vrtimer/internal/util"
)

var errBadInterval = errors.New("interval must look like WORKOUT:BREAK, in whole minutes")

// parseIntervals reads --interval values such as "30:1".
func parseIntervals(values []string) ([]models.IntervalSpec, error) {
	out := make([]models.IntervalSpec, 0, len(values))
	for _, v := range values {
		workout, brk, ok := strings.Cut(strings.TrimSpace(v), ":")
		if !ok {
			return nil, fmt.Errorf("%q: %w", v, errBadInterval)
		}
		w, werr := strconv.Atoi(strings.TrimSpace(workout))
		b, berr := strconv.Atoi(strings.TrimSpace(brk))
		spec := models.IntervalSpec{WorkoutMinutes: w, BreakMinutes: b}
		if werr != nil || berr != nil || !spec.Valid() {
			return nil, fmt.Errorf("%q: %w", v, errBadInterval)
		}
		out = append(out, spec)
	}
	return out, nil
}

// loadSpeed fetches the timer settings when a source is configured. A
// failed fetch is not an error; the multiplier falls back to the default.
func (a *application) loadSpeed(cfg config.Configuration) float64 {
	loaded := config.DefaultSpeedMultiplier
	if cfg.SettingsSource != "" {
		settings, err := config.LoadTimerSettings(a.ctx, nil, cfg.SettingsSource)
		if err != nil {
			log.WithError(err).Debug("Using default timer settings.")
		}
		loaded = settings.SpeedMultiplier
	}
	return cfg.EffectiveSpeed(loaded)
}

// plan picks the intervals to start with: --interval values, then the
// remembered plan, then an empty list.
func (a *application) plan(cfg config.Configuration, plans database.PlanRepository) (models.Plan, error) {
	plan := models.Plan{PrepMinutes: cfg.Prep()}
	if len(a.intervals) > 0 {
		intervals, err := parseIntervals(a.intervals)
		if err != nil {
			return models.Plan{}, err
		}
		plan.Intervals = intervals
		return plan, nil
	}
	if plans == nil {
		return plan, nil
	}
	saved, ok, err := plans.LoadPlan(a.ctx)
	if err != nil {
		log.WithError(err).Warn("Cannot load saved plan.")
		return plan, nil
	}
	if ok {
		plan.Intervals = saved.Intervals
		if a.flags.PrepMinutes == nil {
			plan.PrepMinutes = saved.PrepMinutes
		}
	}
	return plan, nil
}

func (a *application) run() error {
	cfg, err := a.configuration()
	if err != nil {
		return err
	}
	interactive := !a.headless && isTerminal(a.out)
	if interactive {
		f, err := util.OpenLogFile(config.AppName, config.LogFileName)
		if err != nil {
			return err
		}
		defer func() {
			util.SetLogOutput(os.Stderr)
			_ = f.Close()
		}()
		util.SetLogOutput(f)
	}

	db, err := a.openHistory(cfg)
	if err != nil {
		log.WithError(err).Warn("Running without history.")
		db = nil
	}
	defer func() {
		util.LogError("Cannot close history.", db.Close())
	}()

	var recorder session.Recorder
	var plans database.PlanRepository
	if db != nil {
		plans = db
		if !cfg.DisableHistory {
			recorder = db
		}
	}
	plan, err := a.plan(cfg, plans)
	if err != nil {
		return err
	}

	announcer := session.SelectAnnouncer(session.AnnouncerOptions{
		Disabled: cfg.DisableSpeech,
		Command:  cfg.SpeechCommand,
	})
	defer announcer.Cancel()

	speed := a.loadSpeed(cfg)
	log.With("speedMultiplier", speed).
		With("intervals", len(plan.Intervals)).
		Info("Starting timer.")

	if interactive {
		return a.runInteractive(cfg, plan, speed, announcer, recorder, plans)
	}
	return a.runHeadless(plan, speed, announcer, recorder)
}

func (a *application) runInteractive(cfg config.Configuration, plan models.Plan, speed float64, announcer session.Announcer, recorder session.Recorder, plans database.PlanRepository) error {
	m := tui.NewModel(a.ctx, tui.Options{
		Announcer:       announcer,
		Recorder:        recorder,
		Plans:           plans,
		Clock:           clockwork.NewRealClock(),
		Observer:        logTransition,
		SpeedMultiplier: speed,
		Plan:            plan,
		WorkoutMinutes:  cfg.WorkoutMinutes,
		BreakMinutes:    cfg.BreakMinutes,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(a.ctx))
	final, err := p.Run()
	if fm, ok := final.(tui.Model); ok {
		// Interrupted mid-session: record it as stopped.
		_ = fm.Controller().Stop()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

func (a *application) runHeadless(plan models.Plan, speed float64, announcer session.Announcer, recorder session.Recorder) error {
	if len(plan.Intervals) == 0 {
		return fmt.Errorf("%w: pass --interval WORKOUT:BREAK", session.ErrNoIntervals)
	}
	display := &consoleDisplay{w: a.out}
	c := session.NewController(a.ctx, session.Options{
		Display:         display,
		Announcer:       announcer,
		Clock:           clockwork.NewRealClock(),
		Recorder:        recorder,
		Observer:        logTransition,
		SpeedMultiplier: speed,
		PrepMinutes:     plan.PrepMinutes,
		Intervals:       plan.Intervals,
	})
	runner := session.NewRunner(c)

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	go readCommands(ctx, a.in, runner.Commands())

	err := runner.Run(ctx)
	fmt.Fprintln(a.out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func logTransition(t session.Transition) {
	log.With("from", t.From).
		With("to", t.To).
		With("interval", t.Index).
		Debug("Phase changed.")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// consoleDisplay writes the countdown in place and each status on its own line.
type consoleDisplay struct {
	w         io.Writer
	countdown string
}

func (d *consoleDisplay) ShowCountdown(text string) {
	if text == d.countdown {
		return
	}
	d.countdown = text
	fmt.Fprintf(d.w, "\r%s", text)
}

func (d *consoleDisplay) ShowStatus(text string) {
	fmt.Fprintf(d.w, "\r%s\n", text)
	if d.countdown != "" {
		fmt.Fprint(d.w, d.countdown)
	}
}

// parseCommand maps a line of headless input to a session command.
func parseCommand(line string) (session.Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "p", "pause":
		return session.CommandTogglePause, true
	case "r", "resume":
		return session.CommandResume, true
	case "s", "stop", "q", "quit":
		return session.CommandStop, true
	default:
		return 0, false
	}
}

func readCommands(ctx context.Context, r io.Reader, out chan<- session.Command) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, ok := parseCommand(scanner.Text())
		if !ok {
			log.With("input", scanner.Text()).Debug("Unknown command.")
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
