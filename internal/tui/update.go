package tui

import (
	"errors"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/session"
	"github.com/akyairhashvil/vrtimer/internal/util"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/echocat/slf4g"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var fired uint64

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		target := config.TargetProgressWidth
		if msg.Width < config.CompactModeThreshold {
			target = msg.Width / 2
		}
		if target < config.MinProgressWidth {
			target = config.MinProgressWidth
		}
		m.progress.Width = target

	case tea.KeyMsg:
		next, cmd, handled := m.keys.Handle(m, msg.String())
		if handled {
			m = next
			cmds = append(cmds, cmd)
		}

	case timerTickMsg:
		if !m.timers.armed(msg) {
			return m, nil
		}
		switch msg.Kind {
		case session.CountdownTimer:
			m.controller.Tick(msg.ID)
		case session.ReminderTimer:
			m.controller.Remind(msg.ID)
		}
		fired = msg.ID

	case progress.FrameMsg:
		newProg, cmd := m.progress.Update(msg)
		m.progress = newProg.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if !m.quitting {
		cmds = append(cmds, m.timers.sync(m.controller.Timers(), fired)...)
	}
	return m, tea.Batch(cmds...)
}

// report keeps a failed user action on screen. Precondition failures are
// expected and only logged at debug level.
func (m *Model) report(action string, err error) {
	if err == nil {
		m.message = ""
		return
	}
	if errors.Is(err, session.ErrInvalidOperation) {
		log.WithError(err).
			With("action", action).
			Debug("Action ignored.")
		if errors.Is(err, session.ErrIntervalLimit) {
			m.message = config.LimitMessage
		}
		return
	}
	log.WithError(err).
		With("action", action).
		Warn("Action failed.")
	m.message = err.Error()
}

// savePlan remembers the interval list and prep selection for the next run.
func (m *Model) savePlan() {
	if m.plans == nil {
		return
	}
	plan := models.Plan{
		PrepMinutes: m.controller.PrepMinutes(),
		Intervals:   m.controller.Intervals(),
	}
	if err := m.plans.SavePlan(m.ctx, plan); err != nil {
		log.WithError(err).Warn("Cannot save plan.")
		m.message = "Plan not saved: " + err.Error()
	}
}

func (m *Model) clampCursor() {
	last := max(len(m.controller.Intervals())-1, 0)
	m.cursor = util.Clamp(m.cursor, 0, last)
}

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.controller.Snapshot().Running {
		m.report("stop", m.controller.Stop())
	}
	m.quitting = true
	return m, tea.Quit, true
}

func handleFocusNext(m Model, _ string) (Model, tea.Cmd, bool) {
	m.focus = (m.focus + 1) % (config.FieldList + 1)
	return m, nil, true
}

func handleFocusPrev(m Model, _ string) (Model, tea.Cmd, bool) {
	m.focus = (m.focus + config.FieldList) % (config.FieldList + 1)
	return m, nil, true
}

func handleOptionPrev(m Model, _ string) (Model, tea.Cmd, bool) {
	return m.cycleOption(-1)
}

func handleOptionNext(m Model, _ string) (Model, tea.Cmd, bool) {
	return m.cycleOption(1)
}

func (m Model) cycleOption(delta int) (Model, tea.Cmd, bool) {
	step := func(idx int, options []int) int {
		return util.Cycle(idx, delta, len(options))
	}
	switch m.focus {
	case config.FieldPrep:
		next := step(m.prep, config.PrepOptions)
		if err := m.controller.SetPrepMinutes(config.PrepOptions[next]); err != nil {
			m.report("prep", err)
			return m, nil, true
		}
		m.prep = next
		m.savePlan()
	case config.FieldWorkout:
		m.workout = step(m.workout, config.WorkoutOptions)
	case config.FieldBreak:
		m.brk = step(m.brk, config.BreakOptions)
	default:
		return m, nil, false
	}
	return m, nil, true
}

func handleCursorUp(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.cursor > 0 {
		m.cursor--
	}
	return m, nil, true
}

func handleCursorDown(m Model, _ string) (Model, tea.Cmd, bool) {
	m.cursor++
	m.clampCursor()
	return m, nil, true
}

func handleAdd(m Model, _ string) (Model, tea.Cmd, bool) {
	spec := models.IntervalSpec{
		WorkoutMinutes: config.WorkoutOptions[m.workout],
		BreakMinutes:   config.BreakOptions[m.brk],
	}
	err := m.controller.AddInterval(spec)
	m.report("add", err)
	if err == nil {
		m.cursor = len(m.controller.Intervals()) - 1
		m.savePlan()
	}
	return m, nil, true
}

func handleRemove(m Model, _ string) (Model, tea.Cmd, bool) {
	err := m.controller.RemoveInterval(m.cursor)
	m.report("remove", err)
	if err == nil {
		m.clampCursor()
		m.savePlan()
	}
	return m, nil, true
}

func handleStart(m Model, _ string) (Model, tea.Cmd, bool) {
	m.report("start", m.controller.Start())
	return m, nil, true
}

func handleTogglePause(m Model, _ string) (Model, tea.Cmd, bool) {
	m.report("pause", m.controller.TogglePause())
	return m, nil, true
}

func handleStop(m Model, _ string) (Model, tea.Cmd, bool) {
	m.report("stop", m.controller.Stop())
	return m, nil, true
}
