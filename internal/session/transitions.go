package session

import (
	"fmt"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/util"
)

// completePhase runs when the current phase's countdown expires, or on
// resume after a pending advance.
//
//	prep                   -> workout
//	workout, not last      -> break
//	workout, last          -> complete -> idle
//	break, next exists     -> workout(next)
//	break, none left       -> complete -> idle
func (c *Controller) completePhase() {
	c.state.paused = false
	c.state.pendingAdvance = false
	c.cancelReminders()

	switch c.state.phase {
	case models.PhasePrep:
		c.beginWorkout()
	case models.PhaseWorkout:
		c.state.completed++
		if c.state.activeIndex == len(c.intervals)-1 {
			c.completeSession()
			return
		}
		c.beginBreak()
	case models.PhaseBreak:
		next := c.state.activeIndex + 1
		if next >= len(c.intervals) {
			c.completeSession()
			return
		}
		c.state.activeIndex = next
		c.beginWorkout()
	}
}

func (c *Controller) beginPrep() {
	text := util.Minutes(c.prepMinutes)
	c.setPhase(models.PhasePrep)
	c.display.ShowStatus(fmt.Sprintf("Prep for %s.", text))
	c.announcer.Announce(fmt.Sprintf("Get ready. Workout starts in %s.", text))
	c.startCountdown(float64(c.prepMinutes*60), false)
}

func (c *Controller) beginWorkout() {
	current := c.intervals[c.state.activeIndex]
	c.setPhase(models.PhaseWorkout)
	c.display.ShowStatus(workoutStatus(current))
	c.announcer.Announce(fmt.Sprintf("Starting workout for %s.", util.Minutes(current.WorkoutMinutes)))
	c.startCountdown(float64(current.WorkoutMinutes*60), false)
}

func (c *Controller) beginBreak() {
	current := c.intervals[c.state.activeIndex]
	rest := util.Minutes(current.BreakMinutes)
	c.announcer.Announce(fmt.Sprintf("%s passed, resting for %s.", util.Minutes(current.WorkoutMinutes), rest))
	c.setPhase(models.PhaseBreak)
	c.display.ShowStatus(fmt.Sprintf("Rest for %s.", rest))
	c.startCountdown(float64(current.BreakMinutes*60), false)
}

func (c *Controller) completeSession() {
	c.countdown = Timer{}
	c.setPhase(models.PhaseComplete)
	c.announcer.Announce(config.PhraseDone)
	c.display.ShowStatus(config.StatusComplete)
	c.record(models.OutcomeCompleted)
	c.resetState(true, false)
}

func workoutStatus(spec models.IntervalSpec) string {
	return fmt.Sprintf("Workout for %s.", util.Minutes(spec.WorkoutMinutes))
}
