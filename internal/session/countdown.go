package session

import (
	"fmt"
	"math"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/models"
)

// startCountdown arms a fresh countdown timer for seconds of simulated time,
// replacing any previous one. A resumed countdown keeps the phase total and
// the milestones already announced.
func (c *Controller) startCountdown(seconds float64, resume bool) {
	c.state.remaining = seconds
	if !resume {
		c.state.total = seconds
		if c.state.phase == models.PhaseWorkout {
			c.state.milestones = make(map[int]bool)
		}
		c.state.pendingAdvance = false
	}
	c.showRemaining()
	c.state.lastTick = c.clock.Now()
	c.countdown = c.newTimer(CountdownTimer, config.TickInterval(c.speed))
}

func (c *Controller) advanceCountdown() {
	now := c.clock.Now()
	delta := now.Sub(c.state.lastTick).Seconds() * c.speed
	c.state.lastTick = now
	if delta < 0 {
		delta = 0
	}
	c.state.remaining = math.Max(0, c.state.remaining-delta)

	displaySeconds := int(math.Ceil(c.state.remaining))
	c.display.ShowCountdown(FormatClock(displaySeconds))
	if c.state.phase == models.PhaseWorkout {
		c.announceMilestone(displaySeconds)
	}
	if c.state.remaining <= 0 {
		c.countdown = Timer{}
		c.display.ShowCountdown(FormatClock(0))
		c.completePhase()
	}
}

func (c *Controller) showRemaining() {
	c.display.ShowCountdown(FormatClock(int(math.Ceil(c.state.remaining))))
}

// announceMilestone calls out every fifth remaining minute of a workout,
// once each, skipping the workout's own length.
func (c *Controller) announceMilestone(displaySeconds int) {
	totalMinutes := int(math.Ceil(c.state.total / 60))
	remainingMinutes := (displaySeconds + 59) / 60
	if remainingMinutes <= 0 ||
		remainingMinutes%config.MilestoneEveryMinutes != 0 ||
		remainingMinutes == totalMinutes ||
		c.state.milestones[remainingMinutes] {
		return
	}
	if c.state.milestones == nil {
		c.state.milestones = make(map[int]bool)
	}
	c.state.milestones[remainingMinutes] = true
	c.announcer.Announce(fmt.Sprintf("%d minutes left.", remainingMinutes))
}
