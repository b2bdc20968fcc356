package config

// Layout constants.
const (
	// MinProgressWidth is the narrowest phase progress bar drawn.
	MinProgressWidth = 10

	// TargetProgressWidth is the preferred progress bar width.
	TargetProgressWidth = 40

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// MinStatusWidth is the minimum width for status and announcement lines.
	MinStatusWidth = 20
)

// Builder fields, in focus order.
const (
	FieldPrep = iota
	FieldWorkout
	FieldBreak
	FieldList
)

// Display limits.
const (
	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)
