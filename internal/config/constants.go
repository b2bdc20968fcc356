package config

import "time"

// Session limits and defaults.
const (
	MaxIntervals          = 10
	DefaultPrepMinutes    = 1
	DefaultWorkoutMinutes = 30
	DefaultBreakMinutes   = 1
	MilestoneEveryMinutes = 5
)

// Selectable durations, in minutes. A prep of 0 skips the prep phase.
var (
	PrepOptions    = []int{0, 1, 2, 3, 4, 5}
	WorkoutOptions = []int{1, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}
	BreakOptions   = []int{1, 2, 3, 4, 5}
)

// Timer cadence.
const (
	BaseTickInterval   = 200 * time.Millisecond
	MinTickInterval    = 100 * time.Millisecond
	PauseReminderEvery = 60 * time.Second
)

// Speed multipliers.
const (
	DefaultSpeedMultiplier = 1.0
	TestSpeedMultiplier    = 6.0
)

// Settings fetch and server.
const (
	SettingsFileName     = "config.json"
	SettingsFetchTimeout = 5 * time.Second
	MaxSettingsBytes     = 1 << 20
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 5000
)

// History storage.
const (
	DBTimeout           = 5 * time.Second
	DefaultHistoryLimit = 20
)

// Application files.
const (
	AppName               = "vrtimer"
	DBFileName            = "history.db"
	LogFileName           = "vrtimer.log"
	ConfigurationFileName = "configuration.yml"
)

// Phrases spoken or shown by the session controller.
const (
	PhrasePauseReminder  = "Paused. Shall we continue?"
	PhraseResume         = "Resuming workout."
	PhraseStopped        = "Session stopped."
	PhraseDone           = "Workout done. Good job!"
	StatusComplete       = "Workout complete. Great job!"
	StatusReady          = "Ready when you are."
	StatusEmpty          = "Add timers to build your workout."
	StatusWorkoutPaused  = "Workout paused."
	LimitMessage         = "Timer limit reached. Start your workout or remove an entry."
	CountdownPlaceholder = "--:--"
)
