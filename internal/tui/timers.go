package tui

import (
	"time"

	"github.com/akyairhashvil/vrtimer/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// timerTickMsg is delivered when a controller timer expires.
type timerTickMsg struct {
	ID   uint64
	Kind session.TimerKind
}

func tickAfter(t session.Timer) tea.Cmd {
	return tea.Tick(t.Every, func(time.Time) tea.Msg {
		return timerTickMsg{ID: t.ID, Kind: t.Kind}
	})
}

// armedTimers is the controller timer ID each kind currently has a tick
// scheduled for.
type armedTimers [2]uint64

// sync schedules ticks for new controller timers and re-arms fired, which
// just delivered its tick and is still wanted. Timers the controller
// dropped are forgotten; their pending tick arrives stale and is ignored.
func (a *armedTimers) sync(active []session.Timer, fired uint64) []tea.Cmd {
	var cmds []tea.Cmd
	for _, kind := range []session.TimerKind{session.CountdownTimer, session.ReminderTimer} {
		var want session.Timer
		for _, t := range active {
			if t.Kind == kind {
				want = t
				break
			}
		}
		if !want.Active() {
			a[kind] = 0
			continue
		}
		if want.ID != a[kind] || want.ID == fired {
			a[kind] = want.ID
			cmds = append(cmds, tickAfter(want))
		}
	}
	return cmds
}

func (a armedTimers) armed(msg timerTickMsg) bool {
	return msg.ID != 0 && a[msg.Kind] == msg.ID
}
