package session

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	log "github.com/echocat/slf4g"
	"golang.org/x/text/language"
)

// Announcer speaks phrases. Announce replaces any utterance still playing;
// Cancel silences it.
type Announcer interface {
	Announce(text string)
	Cancel()
}

// LogAnnouncer is used when no speech capability is available.
type LogAnnouncer struct{}

func (LogAnnouncer) Announce(text string) {
	log.With("phrase", text).Info("Announcement")
}

func (LogAnnouncer) Cancel() {}

// SpeechAnnouncer speaks through an external text-to-speech command.
type SpeechAnnouncer struct {
	Command string
	Voice   language.Tag

	mutex   sync.Mutex
	current *exec.Cmd
}

func (s *SpeechAnnouncer) Announce(text string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.killLocked()

	cmd := exec.Command(s.Command, speechArgs(s.Command, s.Voice, text)...)
	if err := cmd.Start(); err != nil {
		log.WithError(err).
			With("command", s.Command).
			Warn("Cannot speak announcement.")
		return
	}
	s.current = cmd
	go func() {
		_ = cmd.Wait()
		s.mutex.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mutex.Unlock()
	}()
}

func (s *SpeechAnnouncer) Cancel() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.killLocked()
}

func (s *SpeechAnnouncer) killLocked() {
	if s.current == nil || s.current.Process == nil {
		return
	}
	_ = s.current.Process.Kill()
	s.current = nil
}

func speechArgs(command string, voice language.Tag, text string) []string {
	base, _ := voice.Base()
	switch filepath.Base(command) {
	case "espeak", "espeak-ng":
		return []string{"-v", strings.ToLower(voice.String()), text}
	case "spd-say":
		return []string{"-l", base.String(), text}
	default:
		return []string{text}
	}
}

// AnnouncerOptions controls SelectAnnouncer.
type AnnouncerOptions struct {
	Disabled bool
	Command  string
	LookPath func(file string) (string, error)
}

// SelectAnnouncer picks the announcer once at startup: a speech command when
// one is available and speech is not disabled, the logging fallback otherwise.
func SelectAnnouncer(opts AnnouncerOptions) Announcer {
	if opts.Disabled {
		return LogAnnouncer{}
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	candidates := speechCandidates(runtime.GOOS)
	if opts.Command != "" {
		candidates = []string{opts.Command}
	}
	for _, name := range candidates {
		if path, err := lookPath(name); err == nil {
			log.With("command", path).Debug("Speech available.")
			return &SpeechAnnouncer{Command: path, Voice: VoiceFromEnv()}
		}
	}
	log.Debug("No speech command found, announcements are logged.")
	return LogAnnouncer{}
}

func speechCandidates(goos string) []string {
	if goos == "darwin" {
		return []string{"say"}
	}
	return []string{"espeak-ng", "espeak", "spd-say"}
}

// VoiceFromEnv derives the speech language from the locale environment,
// falling back to American English.
func VoiceFromEnv() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag, ok := parseLocale(os.Getenv(key)); ok {
			return tag
		}
	}
	return language.AmericanEnglish
}

func parseLocale(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if value == "" || value == "C" || value == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}
