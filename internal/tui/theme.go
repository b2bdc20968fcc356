package tui

import (
	"sort"

	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Countdown lipgloss.Style
	Idle      lipgloss.Style
	Prep      lipgloss.Style
	Workout   lipgloss.Style
	Break     lipgloss.Style
	Complete  lipgloss.Style
	Phrase    lipgloss.Style
	Warning   lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Progress  [2]string
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Countdown: lipgloss.NewStyle().Bold(true).Padding(0, 2),
		Idle:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Prep:      lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Workout:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Break:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Complete:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Phrase:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Progress:  [2]string{"#5A56E0", "#EE6FF8"},
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                        // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true), // Cyan
		Countdown: lipgloss.NewStyle().Bold(true).Padding(0, 2),
		Idle:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),            // White
		Prep:      lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true), // Cyan
		Workout:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true), // Green
		Break:     lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true), // Orange
		Complete:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true), // Pink
		Phrase:    lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Italic(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true), // Yellow
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Progress:  [2]string{"#BD93F9", "#FF79C6"},
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

// SetTheme switches the active theme. Unknown names are ignored and
// reported as false.
func SetTheme(name string) bool {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
		return true
	}
	return false
}

// ThemeNames lists the available themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PhaseStyle is the style the countdown takes in phase p.
func (t Theme) PhaseStyle(p models.Phase) lipgloss.Style {
	switch p {
	case models.PhasePrep:
		return t.Prep
	case models.PhaseWorkout:
		return t.Workout
	case models.PhaseBreak:
		return t.Break
	case models.PhaseComplete:
		return t.Complete
	default:
		return t.Idle
	}
}
