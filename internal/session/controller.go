// Package session implements the interval workout session: the phase state
// machine, the speed-scaled countdown and the announcements made along the way.
//
// A Controller is driven from a single goroutine. Drivers (the TUI or Runner)
// ask Timers for the repeating timers the controller wants and deliver each
// expiry through Tick or Remind.
package session

import (
	"context"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/models"
	log "github.com/echocat/slf4g"
	"github.com/jonboulle/clockwork"
)

// Options wires a Controller to its collaborators. Nil collaborators are
// replaced by no-op or system defaults.
type Options struct {
	Display   Display
	Announcer Announcer
	Clock     Clock
	Recorder  Recorder
	Observer  func(Transition)

	SpeedMultiplier float64
	PrepMinutes     int
	Intervals       []models.IntervalSpec
}

// Transition is reported to the observer on every phase change.
type Transition struct {
	From  models.Phase
	To    models.Phase
	Index int
}

// Snapshot is a read-only view of the session state.
type Snapshot struct {
	Phase            models.Phase
	ActiveIndex      int
	Running          bool
	Paused           bool
	PendingAdvance   bool
	RemainingSeconds float64
	TotalSeconds     float64
	SpeedMultiplier  float64
}

// Controls is the enabled state of every user control.
type Controls struct {
	AddEnabled     bool
	RemoveEnabled  bool
	StartEnabled   bool
	StopEnabled    bool
	PauseEnabled   bool
	SelectsEnabled bool
	PauseLabel     string
	LimitMessage   string
}

type state struct {
	phase          models.Phase
	activeIndex    int
	running        bool
	paused         bool
	pendingAdvance bool
	remaining      float64
	total          float64
	lastTick       time.Time
	milestones     map[int]bool
	startedAt      time.Time
	completed      int
}

type Controller struct {
	ctx       context.Context
	display   Display
	announcer Announcer
	clock     Clock
	recorder  Recorder
	observer  func(Transition)

	speed       float64
	prepMinutes int
	intervals   []models.IntervalSpec

	state       state
	countdown   Timer
	reminder    Timer
	lastTimerID uint64
}

func NewController(ctx context.Context, opts Options) *Controller {
	c := &Controller{
		ctx:       ctx,
		display:   opts.Display,
		announcer: opts.Announcer,
		clock:     opts.Clock,
		recorder:  opts.Recorder,
		observer:  opts.Observer,
		speed:     config.NormalizeSpeed(opts.SpeedMultiplier),
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.display == nil {
		c.display = nopDisplay{}
	}
	if c.announcer == nil {
		c.announcer = LogAnnouncer{}
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if opts.PrepMinutes > 0 {
		c.prepMinutes = opts.PrepMinutes
	}
	for _, spec := range opts.Intervals {
		if err := c.AddInterval(spec); err != nil {
			log.WithError(err).
				With("interval", spec).
				Debug("Skipping preset interval.")
		}
	}
	c.display.ShowCountdown(config.CountdownPlaceholder)
	c.display.ShowStatus(c.idleStatus())
	return c
}

// AddInterval appends an interval while no session runs and the list has room.
func (c *Controller) AddInterval(spec models.IntervalSpec) error {
	if c.state.running {
		return ErrSessionRunning
	}
	if len(c.intervals) >= config.MaxIntervals {
		return ErrIntervalLimit
	}
	if !spec.Valid() {
		return ErrInvalidInterval
	}
	c.intervals = append(c.intervals, spec)
	c.display.ShowStatus(c.idleStatus())
	return nil
}

// RemoveInterval drops the interval at index while no session runs.
func (c *Controller) RemoveInterval(index int) error {
	if c.state.running {
		return ErrSessionRunning
	}
	if index < 0 || index >= len(c.intervals) {
		return ErrIndexOutOfRange
	}
	c.intervals = append(c.intervals[:index], c.intervals[index+1:]...)
	c.display.ShowStatus(c.idleStatus())
	return nil
}

// SetPrepMinutes selects the prep duration used by the next Start. Zero skips prep.
func (c *Controller) SetPrepMinutes(minutes int) error {
	if c.state.running {
		return ErrSessionRunning
	}
	if minutes < 0 {
		return ErrInvalidInterval
	}
	c.prepMinutes = minutes
	return nil
}

// Start runs the configured intervals from the first one, with a prep
// countdown first when prep minutes are selected.
func (c *Controller) Start() error {
	if c.state.running {
		return ErrSessionRunning
	}
	if len(c.intervals) == 0 {
		return ErrNoIntervals
	}
	c.cancelReminders()
	c.state = state{
		running:   true,
		startedAt: c.clock.Now(),
	}
	if c.prepMinutes > 0 {
		c.beginPrep()
		return nil
	}
	c.beginWorkout()
	return nil
}

// Pause suspends the running phase. A workout keeps its remaining time; a
// prep or break forfeits it and advances as soon as the session resumes.
func (c *Controller) Pause() error {
	if !c.state.running {
		return ErrNotRunning
	}
	if c.state.paused {
		return ErrAlreadyPaused
	}
	switch c.state.phase {
	case models.PhaseWorkout:
		c.countdown = Timer{}
		c.showRemaining()
		c.state.paused = true
		c.state.pendingAdvance = false
		c.display.ShowStatus(config.StatusWorkoutPaused)
	case models.PhasePrep, models.PhaseBreak:
		c.countdown = Timer{}
		c.state.remaining = 0
		c.display.ShowCountdown(FormatClock(0))
		c.state.paused = true
		c.state.pendingAdvance = true
		c.display.ShowStatus(c.state.phase.Label() + " paused. Ready to resume.")
	default:
		return ErrNotRunning
	}
	c.startReminders()
	return nil
}

// Resume continues a paused session. A pending advance completes the
// paused phase immediately; a paused workout picks up its countdown.
func (c *Controller) Resume() error {
	if !c.state.running {
		return ErrNotRunning
	}
	if !c.state.paused {
		return ErrNotPaused
	}
	c.state.paused = false
	c.cancelReminders()

	if c.state.pendingAdvance {
		c.state.pendingAdvance = false
		c.completePhase()
		return nil
	}
	if c.state.phase == models.PhaseWorkout {
		c.display.ShowStatus(workoutStatus(c.intervals[c.state.activeIndex]))
		c.startCountdown(c.state.remaining, true)
		c.announcer.Announce(config.PhraseResume)
	}
	return nil
}

// TogglePause pauses a running session or resumes a paused one.
func (c *Controller) TogglePause() error {
	if c.state.paused {
		return c.Resume()
	}
	return c.Pause()
}

// Stop ends the running session whatever its phase.
func (c *Controller) Stop() error {
	if !c.state.running {
		return ErrNotRunning
	}
	c.record(models.OutcomeStopped)
	c.resetState(false, true)
	c.display.ShowStatus(config.PhraseStopped)
	c.announcer.Announce(config.PhraseStopped)
	return nil
}

// Tick advances the countdown identified by id. Ticks for a timer that is
// no longer active are ignored and reported as false.
func (c *Controller) Tick(id uint64) bool {
	if id == 0 || id != c.countdown.ID {
		return false
	}
	c.advanceCountdown()
	return true
}

// Remind repeats the pause reminder for the reminder timer identified by id.
func (c *Controller) Remind(id uint64) bool {
	if id == 0 || id != c.reminder.ID {
		return false
	}
	c.announcer.Announce(config.PhrasePauseReminder)
	return true
}

// Timers returns the timers a driver must keep running.
func (c *Controller) Timers() []Timer {
	var out []Timer
	if c.countdown.Active() {
		out = append(out, c.countdown)
	}
	if c.reminder.Active() {
		out = append(out, c.reminder)
	}
	return out
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:            c.state.phase,
		ActiveIndex:      c.state.activeIndex,
		Running:          c.state.running,
		Paused:           c.state.paused,
		PendingAdvance:   c.state.pendingAdvance,
		RemainingSeconds: c.state.remaining,
		TotalSeconds:     c.state.total,
		SpeedMultiplier:  c.speed,
	}
}

func (c *Controller) Controls() Controls {
	running := c.state.running
	count := len(c.intervals)
	ctl := Controls{
		AddEnabled:     !running && count < config.MaxIntervals,
		RemoveEnabled:  !running && count > 0,
		StartEnabled:   !running && count > 0,
		StopEnabled:    running,
		PauseEnabled:   running,
		SelectsEnabled: !running,
		PauseLabel:     "Pause",
	}
	if c.state.paused {
		ctl.PauseLabel = "Resume"
	}
	if count >= config.MaxIntervals {
		ctl.LimitMessage = config.LimitMessage
	}
	return ctl
}

// Intervals returns a copy of the configured intervals.
func (c *Controller) Intervals() []models.IntervalSpec {
	out := make([]models.IntervalSpec, len(c.intervals))
	copy(out, c.intervals)
	return out
}

func (c *Controller) PrepMinutes() int { return c.prepMinutes }

func (c *Controller) SpeedMultiplier() float64 { return c.speed }

func (c *Controller) idleStatus() string {
	if len(c.intervals) > 0 {
		return config.StatusReady
	}
	return config.StatusEmpty
}

func (c *Controller) setPhase(next models.Phase) {
	prev := c.state.phase
	c.state.phase = next
	c.notify(prev, next)
}

func (c *Controller) notify(from, to models.Phase) {
	if c.observer == nil || from == to {
		return
	}
	c.observer(Transition{From: from, To: to, Index: c.state.activeIndex})
}

func (c *Controller) newTimer(kind TimerKind, every time.Duration) Timer {
	c.lastTimerID++
	return Timer{ID: c.lastTimerID, Kind: kind, Every: every}
}

func (c *Controller) startReminders() {
	c.cancelReminders()
	c.announcer.Announce(config.PhrasePauseReminder)
	c.reminder = c.newTimer(ReminderTimer, config.ReminderInterval(c.speed))
}

func (c *Controller) cancelReminders() {
	c.reminder = Timer{}
}

// resetState tears the session down to idle.
func (c *Controller) resetState(preserveStatus, cancelSpeech bool) {
	prev := c.state.phase
	c.state = state{}
	c.countdown = Timer{}
	c.cancelReminders()
	c.display.ShowCountdown(config.CountdownPlaceholder)
	if !preserveStatus {
		c.display.ShowStatus(c.idleStatus())
	}
	if cancelSpeech {
		c.announcer.Cancel()
	}
	c.notify(prev, models.PhaseIdle)
}

func (c *Controller) record(outcome models.Outcome) {
	if c.recorder == nil {
		return
	}
	rec := models.SessionRecord{
		StartedAt:          c.state.startedAt,
		EndedAt:            c.clock.Now(),
		Outcome:            outcome,
		PrepMinutes:        c.prepMinutes,
		Intervals:          c.Intervals(),
		IntervalsCompleted: c.state.completed,
		SpeedMultiplier:    c.speed,
	}
	if err := c.recorder.RecordSession(c.ctx, rec); err != nil {
		log.WithError(err).
			With("outcome", outcome).
			Warn("Cannot record session.")
	}
}
