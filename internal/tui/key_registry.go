package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Input modes a binding can be restricted to.
const (
	ModeIdle = iota
	ModeRunning
)

type KeyHandler func(m Model, key string) (Model, tea.Cmd, bool)

type KeyBinding struct {
	Key         string
	Handler     KeyHandler
	Description string
	Modes       []int
	Priority    int
}

func (b KeyBinding) AppliesToMode(mode int) bool {
	if len(b.Modes) == 0 {
		return true
	}
	for _, v := range b.Modes {
		if v == mode {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m Model, key string) (Model, tea.Cmd, bool) {
	mode := m.mode()
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesToMode(mode) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) BindingsForMode(mode int) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToMode(mode) {
			out = append(out, b)
		}
	}
	return out
}

// HelpForMode renders the described bindings of mode as "[k]Desc|...".
func (r *HandlerRegistry) HelpForMode(mode int) string {
	seen := make(map[string]bool)
	var parts []string
	for _, b := range r.BindingsForMode(mode) {
		if b.Description == "" || seen[b.Key] {
			continue
		}
		seen[b.Key] = true
		parts = append(parts, "["+b.Key+"]"+b.Description)
	}
	return strings.Join(parts, "|")
}

// defaultRegistry binds every key the timer screen understands.
func defaultRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	idle := []int{ModeIdle}
	running := []int{ModeRunning}

	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "Quit", Priority: 100})
	r.Register(KeyBinding{Key: "ctrl+c", Handler: handleQuit, Priority: 100})

	r.Register(KeyBinding{Key: "tab", Handler: handleFocusNext, Description: "Field", Modes: idle, Priority: 50})
	r.Register(KeyBinding{Key: "shift+tab", Handler: handleFocusPrev, Modes: idle, Priority: 50})
	r.Register(KeyBinding{Key: "left", Handler: handleOptionPrev, Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "h", Handler: handleOptionPrev, Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "right", Handler: handleOptionNext, Description: "Change", Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "l", Handler: handleOptionNext, Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "up", Handler: handleCursorUp, Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "k", Handler: handleCursorUp, Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "down", Handler: handleCursorDown, Modes: idle, Priority: 40})
	r.Register(KeyBinding{Key: "j", Handler: handleCursorDown, Modes: idle, Priority: 40})

	r.Register(KeyBinding{Key: "a", Handler: handleAdd, Description: "Add", Modes: idle, Priority: 30})
	r.Register(KeyBinding{Key: "d", Handler: handleRemove, Description: "Remove", Modes: idle, Priority: 30})
	r.Register(KeyBinding{Key: "delete", Handler: handleRemove, Modes: idle, Priority: 30})
	r.Register(KeyBinding{Key: "s", Handler: handleStart, Description: "Start", Modes: idle, Priority: 30})
	r.Register(KeyBinding{Key: "enter", Handler: handleStart, Modes: idle, Priority: 30})

	r.Register(KeyBinding{Key: "p", Handler: handleTogglePause, Description: "Pause/Resume", Modes: running, Priority: 30})
	r.Register(KeyBinding{Key: " ", Handler: handleTogglePause, Modes: running, Priority: 30})
	r.Register(KeyBinding{Key: "x", Handler: handleStop, Description: "Stop", Modes: running, Priority: 30})
	r.Register(KeyBinding{Key: "esc", Handler: handleStop, Modes: running, Priority: 30})
	return r
}
