package util

import (
	"fmt"
	"time"
)

// Clamp constrains a value to a range.
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Minutes renders a minute count the way announcements say it ("1 minute", "5 minutes").
func Minutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}

// Cycle moves idx by delta through a list of length n, wrapping at both ends.
func Cycle(idx, delta, n int) int {
	if n <= 0 {
		return 0
	}
	idx = (idx + delta) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// IndexOf returns the position of want in values, or fallback when absent.
func IndexOf(values []int, want, fallback int) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return fallback
}

// FormatDuration formats a duration for display (e.g., "2h 15m", "45s").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		if d < 0 {
			d = 0
		}
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
