package tui

import (
	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/session"
)

// screen receives what the controller displays and speaks. It is shared by
// every copy of Model, so the controller can write to it between updates.
type screen struct {
	countdown string
	status    string
	phrase    string
}

func newScreen() *screen {
	return &screen{countdown: config.CountdownPlaceholder}
}

func (s *screen) ShowCountdown(text string) { s.countdown = text }

func (s *screen) ShowStatus(text string) { s.status = text }

var _ session.Display = (*screen)(nil)

// echoAnnouncer forwards phrases to the real announcer and keeps the last
// one on screen.
type echoAnnouncer struct {
	next   session.Announcer
	screen *screen
}

func (a echoAnnouncer) Announce(text string) {
	a.screen.phrase = text
	a.next.Announce(text)
}

func (a echoAnnouncer) Cancel() {
	a.next.Cancel()
}
