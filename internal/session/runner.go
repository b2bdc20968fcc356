package session

import (
	"context"
	"time"

	log "github.com/echocat/slf4g"
)

// Command is a user request delivered to a Runner.
type Command int

const (
	CommandPause Command = iota
	CommandResume
	CommandTogglePause
	CommandStop
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandTogglePause:
		return "toggle-pause"
	case CommandStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Runner drives a Controller without a UI. Run owns the controller for its
// whole duration: every tick, reminder and command is handled on the Run
// goroutine.
type Runner struct {
	controller *Controller
	commands   chan Command
}

func NewRunner(c *Controller) *Runner {
	return &Runner{
		controller: c,
		commands:   make(chan Command, 4),
	}
}

// Commands accepts pause, resume and stop requests while Run is active.
func (r *Runner) Commands() chan<- Command {
	return r.commands
}

// Run starts the session and blocks until it completes or is stopped. When
// ctx is cancelled first, the session is stopped and ctx.Err() returned.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.controller.Start(); err != nil {
		return err
	}

	var countdown, reminder armedTimer
	defer countdown.stop()
	defer reminder.stop()

	for {
		active := r.controller.Timers()
		countdown.sync(active, CountdownTimer)
		reminder.sync(active, ReminderTimer)
		if !r.controller.Snapshot().Running {
			return nil
		}

		select {
		case <-ctx.Done():
			_ = r.controller.Stop()
			return ctx.Err()
		case <-countdown.C():
			r.controller.Tick(countdown.id)
		case <-reminder.C():
			r.controller.Remind(reminder.id)
		case cmd := <-r.commands:
			if err := r.apply(cmd); err != nil {
				log.WithError(err).
					With("command", cmd).
					Debug("Command ignored.")
			}
		}
	}
}

func (r *Runner) apply(cmd Command) error {
	switch cmd {
	case CommandPause:
		return r.controller.Pause()
	case CommandResume:
		return r.controller.Resume()
	case CommandTogglePause:
		return r.controller.TogglePause()
	case CommandStop:
		return r.controller.Stop()
	default:
		return ErrInvalidOperation
	}
}

// armedTimer is the ticker currently backing one controller timer handle.
type armedTimer struct {
	id     uint64
	ticker *time.Ticker
}

func (a *armedTimer) sync(active []Timer, kind TimerKind) {
	var want Timer
	for _, t := range active {
		if t.Kind == kind {
			want = t
			break
		}
	}
	if want.ID == a.id {
		return
	}
	a.stop()
	if want.Active() {
		a.id = want.ID
		a.ticker = time.NewTicker(want.Every)
	}
}

func (a *armedTimer) C() <-chan time.Time {
	if a.ticker == nil {
		return nil
	}
	return a.ticker.C
}

func (a *armedTimer) stop() {
	if a.ticker != nil {
		a.ticker.Stop()
	}
	a.ticker = nil
	a.id = 0
}
