package session

import "fmt"

// Display renders the countdown and free-text status of a session.
type Display interface {
	ShowCountdown(text string)
	ShowStatus(text string)
}

type nopDisplay struct{}

func (nopDisplay) ShowCountdown(string) {}
func (nopDisplay) ShowStatus(string)    {}

// FormatClock renders whole seconds as zero padded MM:SS. Minutes are not
// wrapped into hours, so an hour-long workout shows 60:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
