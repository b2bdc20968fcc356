package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"dario.cat/mergo"
	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/akyairhashvil/vrtimer/internal/util"
)

// FlagHolder is anything flags can be registered on (an application or a command).
type FlagHolder interface {
	Flag(name, help string) *kingpin.FlagClause
}

// Configuration holds the user preferences shared by every command. Values
// come from flags, then the YAML file, then NewConfiguration.
type Configuration struct {
	SettingsSource  string  `yaml:"settingsSource,omitempty"`
	SpeedMultiplier float64 `yaml:"speedMultiplier,omitempty"`
	TestMode        bool    `yaml:"testMode,omitempty"`

	PrepMinutes    *int `yaml:"prepMinutes,omitempty"`
	WorkoutMinutes int  `yaml:"workoutMinutes,omitempty"`
	BreakMinutes   int  `yaml:"breakMinutes,omitempty"`

	DisableSpeech bool   `yaml:"disableSpeech,omitempty"`
	SpeechCommand string `yaml:"speechCommand,omitempty"`
	Theme         string `yaml:"theme,omitempty"`

	HistoryFile    string `yaml:"historyFile,omitempty"`
	DisableHistory bool   `yaml:"disableHistory,omitempty"`
}

func NewConfiguration() Configuration {
	prep := DefaultPrepMinutes
	return Configuration{
		SettingsSource: filepath.Join(util.ConfigDir(AppName), SettingsFileName),
		PrepMinutes:    &prep,
		WorkoutMinutes: DefaultWorkoutMinutes,
		BreakMinutes:   DefaultBreakMinutes,
		Theme:          "default",
	}
}

func (c *Configuration) SetupConfiguration(using FlagHolder) {
	using.Flag("settings", "URL or file the timer settings (config.json) are loaded from.").
		Envar("VRTIMER_SETTINGS").
		StringVar(&c.SettingsSource)
	using.Flag("speed", "Timer speed multiplier; overrides the loaded timer settings.").
		Envar("VRTIMER_SPEED").
		Float64Var(&c.SpeedMultiplier)
	using.Flag("test", "Run timers in accelerated test mode (6x speed).").
		Envar("VRTIMER_TEST").
		BoolVar(&c.TestMode)
	using.Flag("prep", "Prep minutes before the first workout (0 skips prep).").
		Envar("VRTIMER_PREP").
		SetValue(optionalInt{&c.PrepMinutes})
	using.Flag("workout", "Default workout minutes offered when adding intervals.").
		Envar("VRTIMER_WORKOUT").
		IntVar(&c.WorkoutMinutes)
	using.Flag("break", "Default break minutes offered when adding intervals.").
		Envar("VRTIMER_BREAK").
		IntVar(&c.BreakMinutes)
	using.Flag("mute", "Log announcements instead of speaking them.").
		Envar("VRTIMER_MUTE").
		BoolVar(&c.DisableSpeech)
	using.Flag("speech-command", "Text-to-speech command to use instead of auto detection.").
		Envar("VRTIMER_SPEECH_COMMAND").
		StringVar(&c.SpeechCommand)
	using.Flag("theme", "Color theme (default, dracula).").
		Envar("VRTIMER_THEME").
		StringVar(&c.Theme)
	using.Flag("history", "Session history database file.").
		Envar("VRTIMER_HISTORY").
		StringVar(&c.HistoryFile)
	using.Flag("ephemeral", "Do not record finished sessions.").
		Envar("VRTIMER_EPHEMERAL").
		BoolVar(&c.DisableHistory)
}

// Resolve layers fromFlags over fromFile over the defaults. An explicit
// zero prep is kept; the result never aliases either input's PrepMinutes.
func Resolve(fromFlags, fromFile Configuration) (Configuration, error) {
	defaults := NewConfiguration()
	prep := firstSet(fromFlags.PrepMinutes, fromFile.PrepMinutes, defaults.PrepMinutes)

	result := fromFlags
	result.PrepMinutes = nil
	if err := mergo.Merge(&result, fromFile, mergo.WithoutDereference); err != nil {
		return Configuration{}, fmt.Errorf("merge configuration file: %w", err)
	}
	if err := mergo.Merge(&result, defaults, mergo.WithoutDereference); err != nil {
		return Configuration{}, fmt.Errorf("merge configuration defaults: %w", err)
	}
	result.PrepMinutes = &prep
	return result, nil
}

func firstSet(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return DefaultPrepMinutes
}

// Prep returns the configured prep minutes.
func (c Configuration) Prep() int {
	if c.PrepMinutes == nil {
		return DefaultPrepMinutes
	}
	return *c.PrepMinutes
}

// EffectiveSpeed picks the speed multiplier: an explicit value wins, then
// test mode, then what the timer settings resource provided.
func (c Configuration) EffectiveSpeed(loaded float64) float64 {
	if c.SpeedMultiplier > 0 {
		return NormalizeSpeed(c.SpeedMultiplier)
	}
	if c.TestMode {
		return TestSpeedMultiplier
	}
	return NormalizeSpeed(loaded)
}

func (c *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// LoadConfigurationFile reads fn. A missing file yields an empty
// configuration when ignoreNotFound is set.
func LoadConfigurationFile(fn string, ignoreNotFound bool) (Configuration, error) {
	var result Configuration
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := result.loadFrom(f); err != nil {
		return result, fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}
	return result, nil
}

func (c Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// SaveConfigurationFile writes the configuration to fn, creating its directory.
func SaveConfigurationFile(fn string, c Configuration) error {
	_ = os.MkdirAll(filepath.Dir(fn), 0o700)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := c.saveTo(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}
	return nil
}

type optionalInt struct {
	target **int
}

func (o optionalInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	*o.target = &v
	return nil
}

func (o optionalInt) String() string {
	if o.target == nil || *o.target == nil {
		return ""
	}
	return strconv.Itoa(**o.target)
}
