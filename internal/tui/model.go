// Package tui is the terminal front end of the interval timer: the interval
// builder, the countdown with its phase progress, and the session controls.
package tui

import (
	"context"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/session"
	"github.com/akyairhashvil/vrtimer/internal/util"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Announcer       session.Announcer
	Recorder        session.Recorder
	Plans           database.PlanRepository
	Clock           session.Clock
	Observer        func(session.Transition)
	SpeedMultiplier float64

	Plan           models.Plan
	WorkoutMinutes int
	BreakMinutes   int
}

// Model is the root bubbletea model of the timer screen.
type Model struct {
	ctx        context.Context
	controller *session.Controller
	screen     *screen
	plans      database.PlanRepository
	keys       *HandlerRegistry
	timers     *armedTimers

	focus   int
	prep    int
	workout int
	brk     int
	cursor  int

	progress progress.Model
	width    int
	height   int
	message  string
	quitting bool
}

func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	scr := newScreen()
	var announcer session.Announcer = session.LogAnnouncer{}
	if opts.Announcer != nil {
		announcer = opts.Announcer
	}

	m := Model{
		ctx:     ctx,
		screen:  scr,
		plans:   opts.Plans,
		keys:    defaultRegistry(),
		timers:  &armedTimers{},
		prep:    optionIndex(config.PrepOptions, opts.Plan.PrepMinutes, config.DefaultPrepMinutes),
		workout: optionIndex(config.WorkoutOptions, opts.WorkoutMinutes, config.DefaultWorkoutMinutes),
		brk:     optionIndex(config.BreakOptions, opts.BreakMinutes, config.DefaultBreakMinutes),
		progress: progress.New(
			progress.WithGradient(CurrentTheme.Progress[0], CurrentTheme.Progress[1]),
			progress.WithoutPercentage(),
		),
	}
	m.progress.Width = config.TargetProgressWidth

	m.controller = session.NewController(ctx, session.Options{
		Display:         scr,
		Announcer:       echoAnnouncer{next: announcer, screen: scr},
		Clock:           opts.Clock,
		Recorder:        opts.Recorder,
		Observer:        opts.Observer,
		SpeedMultiplier: opts.SpeedMultiplier,
		PrepMinutes:     config.PrepOptions[m.prep],
		Intervals:       opts.Plan.Intervals,
	})
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Controller exposes the session driven by this model.
func (m Model) Controller() *session.Controller {
	return m.controller
}

func (m Model) mode() int {
	if m.controller.Snapshot().Running {
		return ModeRunning
	}
	return ModeIdle
}

// optionIndex finds value among options, falling back to fallback and then
// to the first option.
func optionIndex(options []int, value, fallback int) int {
	return util.IndexOf(options, value, util.IndexOf(options, fallback, 0))
}
