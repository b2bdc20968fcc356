package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	theme := CurrentTheme
	snap := m.controller.Snapshot()
	ctl := m.controller.Controls()

	var b strings.Builder
	b.WriteString(m.renderHeader(theme, snap))
	b.WriteString("\n\n")
	b.WriteString(m.renderCountdown(theme, snap))
	b.WriteString("\n\n")
	b.WriteString(m.renderBuilder(theme, ctl))
	b.WriteString("\n\n")
	b.WriteString(m.renderIntervals(theme, snap))
	b.WriteString("\n")
	if ctl.LimitMessage != "" {
		b.WriteString("\n" + theme.Warning.Render(truncateLabel(ctl.LimitMessage, m.lineWidth())))
	} else if m.message != "" {
		b.WriteString("\n" + theme.Warning.Render(truncateLabel(m.message, m.lineWidth())))
	}
	b.WriteString("\n" + theme.Dim.Render(m.keys.HelpForMode(m.mode())))
	return theme.Base.Render(b.String())
}

func (m Model) lineWidth() int {
	if m.width == 0 {
		return config.TargetProgressWidth * 2
	}
	w := m.width - 4
	if w < config.MinStatusWidth {
		w = config.MinStatusWidth
	}
	return w
}

func (m Model) renderHeader(theme Theme, snap session.Snapshot) string {
	title := fmt.Sprintf("%s v%s", config.AppName, versionLabel())
	if snap.SpeedMultiplier != config.DefaultSpeedMultiplier {
		title += "  |  " + speedLabel(snap.SpeedMultiplier)
	}
	return theme.Header.Render(truncateLabel(title, m.lineWidth()))
}

func speedLabel(speed float64) string {
	return strconv.FormatFloat(speed, 'g', 4, 64) + "x speed"
}

func (m Model) renderCountdown(theme Theme, snap session.Snapshot) string {
	phaseStyle := theme.PhaseStyle(snap.Phase)
	label := snap.Phase.Label()
	if snap.Paused {
		label += " (paused)"
	}
	clock := theme.Countdown.Inherit(phaseStyle).Render(m.screen.countdown)
	top := lipgloss.JoinHorizontal(lipgloss.Center, clock, phaseStyle.Render(label))

	lines := []string{top, m.progress.ViewAs(phaseFraction(snap))}
	if m.screen.status != "" {
		lines = append(lines, truncateLabel(m.screen.status, m.lineWidth()))
	}
	if m.screen.phrase != "" {
		lines = append(lines, theme.Phrase.Render(truncateLabel("“"+m.screen.phrase+"”", m.lineWidth())))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// phaseFraction is how much of the current phase has elapsed.
func phaseFraction(snap session.Snapshot) float64 {
	if !snap.Running || snap.TotalSeconds <= 0 {
		return 0
	}
	f := 1 - snap.RemainingSeconds/snap.TotalSeconds
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (m Model) renderBuilder(theme Theme, ctl session.Controls) string {
	field := func(idx int, name string, minutes int) string {
		text := fmt.Sprintf("%s ‹%s›", name, minutesLabel(minutes))
		switch {
		case !ctl.SelectsEnabled:
			return theme.Dim.Render(text)
		case m.focus == idx:
			return theme.Focused.Render(text)
		default:
			return text
		}
	}
	fields := []string{
		field(config.FieldPrep, "Prep", config.PrepOptions[m.prep]),
		field(config.FieldWorkout, "Workout", config.WorkoutOptions[m.workout]),
		field(config.FieldBreak, "Break", config.BreakOptions[m.brk]),
	}
	if m.width > 0 && m.width < config.CompactModeThreshold {
		return strings.Join(fields, "\n")
	}
	return strings.Join(fields, "   ")
}

func minutesLabel(minutes int) string {
	if minutes == 0 {
		return "none"
	}
	return fmt.Sprintf("%d min", minutes)
}

func (m Model) renderIntervals(theme Theme, snap session.Snapshot) string {
	intervals := m.controller.Intervals()
	title := fmt.Sprintf("Intervals %d/%d", len(intervals), config.MaxIntervals)
	if m.focus == config.FieldList && !snap.Running {
		title = theme.Focused.Render(title)
	} else {
		title = theme.Highlight.Render(title)
	}
	if len(intervals) == 0 {
		return title + "\n" + theme.Dim.Render("  (none)")
	}

	lines := []string{title}
	for i, iv := range intervals {
		marker := "  "
		switch {
		case snap.Running && i == snap.ActiveIndex:
			marker = "▶ "
		case !snap.Running && m.focus == config.FieldList && i == m.cursor:
			marker = "> "
		}
		line := fmt.Sprintf("%s%d. %s workout, %s break", marker, i+1,
			minutesLabel(iv.WorkoutMinutes), minutesLabel(iv.BreakMinutes))
		line = truncateLabel(line, m.lineWidth())
		switch {
		case snap.Running && i == snap.ActiveIndex:
			line = theme.PhaseStyle(snap.Phase).Render(line)
		case snap.Running && i < snap.ActiveIndex:
			line = theme.Dim.Render(line)
		case !snap.Running && m.focus == config.FieldList && i == m.cursor:
			line = theme.Focused.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
