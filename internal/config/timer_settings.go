package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// SpeedField is the JSON field of the timer settings resource holding the
// speed multiplier.
const SpeedField = "timerSpeedMultiplier"

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidSettings  = errors.New("invalid timer settings")
)

// TimerSettings is what the static settings resource may override.
type TimerSettings struct {
	SpeedMultiplier float64 `json:"timerSpeedMultiplier"`
}

func DefaultTimerSettings() TimerSettings {
	return TimerSettings{SpeedMultiplier: DefaultSpeedMultiplier}
}

// ConfigLoadError reports that the timer settings could not be loaded. It is
// never fatal: callers keep DefaultTimerSettings.
type ConfigLoadError struct {
	Source string
	Err    error
}

func (e *ConfigLoadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("load timer settings from %s: %v", e.Source, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// LoadTimerSettings fetches the timer settings from source, which may be an
// http(s) URL, a file:// URL or a plain path. On any failure it returns the
// defaults together with a *ConfigLoadError.
func LoadTimerSettings(ctx context.Context, client *http.Client, source string) (TimerSettings, error) {
	data, err := readSettings(ctx, client, source)
	if err != nil {
		return DefaultTimerSettings(), &ConfigLoadError{Source: source, Err: err}
	}
	settings, err := ParseTimerSettings(data)
	if err != nil {
		return DefaultTimerSettings(), &ConfigLoadError{Source: source, Err: err}
	}
	return settings, nil
}

// ParseTimerSettings reads the optional speed multiplier from a JSON
// document. A missing field keeps the default; a present field must be a
// finite positive number (numeric strings are accepted).
func ParseTimerSettings(data []byte) (TimerSettings, error) {
	settings := DefaultTimerSettings()
	if !gjson.ValidBytes(data) {
		return settings, fmt.Errorf("%w: malformed JSON", ErrInvalidSettings)
	}
	field := gjson.GetBytes(data, SpeedField)
	if !field.Exists() {
		return settings, nil
	}

	var multiplier float64
	switch field.Type {
	case gjson.Number:
		multiplier = field.Float()
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(field.Str), 64)
		if err != nil {
			return settings, fmt.Errorf("%w: %s is not numeric", ErrInvalidSettings, SpeedField)
		}
		multiplier = v
	default:
		return settings, fmt.Errorf("%w: %s has type %s", ErrInvalidSettings, SpeedField, field.Type)
	}
	if NormalizeSpeed(multiplier) != multiplier {
		return settings, fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidSettings, SpeedField, multiplier)
	}
	settings.SpeedMultiplier = multiplier
	return settings, nil
}

func readSettings(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if source == "" {
		return nil, errors.New("no settings source")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetchSettings(ctx, client, source)
	}
	path := source
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return nil, err
		}
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(io.LimitReader(f, MaxSettingsBytes))
}

func fetchSettings(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: SettingsFetchTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxSettingsBytes))
}
