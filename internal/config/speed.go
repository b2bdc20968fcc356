package config

import (
	"math"
	"time"
)

// NormalizeSpeed returns v when it is a finite positive multiplier and
// DefaultSpeedMultiplier otherwise.
func NormalizeSpeed(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return DefaultSpeedMultiplier
	}
	return v
}

// TickInterval is the countdown cadence for a speed multiplier. Faster
// speeds tick more often down to MinTickInterval; beyond that the elapsed
// delta is scaled instead.
func TickInterval(speed float64) time.Duration {
	speed = NormalizeSpeed(speed)
	d := time.Duration(float64(BaseTickInterval) / speed)
	if d < MinTickInterval {
		return MinTickInterval
	}
	return d
}

// ReminderInterval is the real-time spacing of pause reminders, which repeat
// every PauseReminderEvery of simulated time.
func ReminderInterval(speed float64) time.Duration {
	speed = NormalizeSpeed(speed)
	d := time.Duration(float64(PauseReminderEvery) / speed)
	if d < MinTickInterval {
		return MinTickInterval
	}
	return d
}
