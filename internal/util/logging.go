// Package util provides common utilities including logging helpers,
// file system operations, and string formatting functions.
package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	log "github.com/echocat/slf4g"
	_ "github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
)

var logOutput = &switchWriter{target: os.Stderr}

// InstallLogging routes the native slf4g consumer through a writer that can
// be swapped later with SetLogOutput.
func InstallLogging() {
	consumer.Default = consumer.NewWriter(logOutput)
}

// SetLogOutput changes where log lines go. The TUI sends them to a file so
// they do not tear the screen.
func SetLogOutput(w io.Writer) {
	logOutput.set(w)
}

// OpenLogFile opens (appending) the application log file in the data dir.
func OpenLogFile(app, name string) (*os.File, error) {
	dir := DataDir(app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %q: %w", dir, err)
	}
	fn := filepath.Join(dir, name)
	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", fn, err)
	}
	return f, nil
}

// LogError logs an error with context if it is non-nil.
func LogError(context string, err error) {
	if err != nil {
		log.WithError(err).Warn(context)
	}
}

type switchWriter struct {
	mutex  sync.RWMutex
	target io.Writer
}

func (w *switchWriter) Write(p []byte) (int, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	if w.target == nil {
		return len(p), nil
	}
	return w.target.Write(p)
}

func (w *switchWriter) set(next io.Writer) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.target = next
}
