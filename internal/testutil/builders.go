package testutil

import (
	"sync"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/jonboulle/clockwork"
)

// IntervalsBuilder provides fluent API for creating interval lists.
type IntervalsBuilder struct {
	intervals []models.IntervalSpec
}

func NewIntervals() *IntervalsBuilder {
	return &IntervalsBuilder{}
}

func (b *IntervalsBuilder) Add(workoutMinutes, breakMinutes int) *IntervalsBuilder {
	b.intervals = append(b.intervals, models.IntervalSpec{WorkoutMinutes: workoutMinutes, BreakMinutes: breakMinutes})
	return b
}

func (b *IntervalsBuilder) Repeat(n, workoutMinutes, breakMinutes int) *IntervalsBuilder {
	for i := 0; i < n; i++ {
		b.Add(workoutMinutes, breakMinutes)
	}
	return b
}

func (b *IntervalsBuilder) Build() []models.IntervalSpec {
	out := make([]models.IntervalSpec, len(b.intervals))
	copy(out, b.intervals)
	return out
}

// SessionRecordBuilder provides fluent API for creating history records.
type SessionRecordBuilder struct {
	record models.SessionRecord
}

func NewSessionRecord() *SessionRecordBuilder {
	start := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
	return &SessionRecordBuilder{
		record: models.SessionRecord{
			StartedAt:          start,
			EndedAt:            start.Add(31 * time.Minute),
			Outcome:            models.OutcomeCompleted,
			PrepMinutes:        1,
			Intervals:          NewIntervals().Add(30, 1).Build(),
			IntervalsCompleted: 1,
			SpeedMultiplier:    1,
		},
	}
}

func (b *SessionRecordBuilder) WithOutcome(o models.Outcome) *SessionRecordBuilder {
	b.record.Outcome = o
	return b
}

func (b *SessionRecordBuilder) WithStart(t time.Time, d time.Duration) *SessionRecordBuilder {
	b.record.StartedAt = t
	b.record.EndedAt = t.Add(d)
	return b
}

func (b *SessionRecordBuilder) WithIntervals(intervals []models.IntervalSpec, completed int) *SessionRecordBuilder {
	b.record.Intervals = intervals
	b.record.IntervalsCompleted = completed
	return b
}

func (b *SessionRecordBuilder) Build() models.SessionRecord {
	return b.record
}

// NewFakeClock returns a manually advanced clock at a fixed morning.
func NewFakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC))
}

// RecordingAnnouncer remembers every phrase.
type RecordingAnnouncer struct {
	mutex   sync.Mutex
	phrases []string
	cancels int
}

func (a *RecordingAnnouncer) Announce(text string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.phrases = append(a.phrases, text)
}

func (a *RecordingAnnouncer) Cancel() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.cancels++
}

func (a *RecordingAnnouncer) Phrases() []string {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	out := make([]string, len(a.phrases))
	copy(out, a.phrases)
	return out
}

func (a *RecordingAnnouncer) Count(text string) int {
	n := 0
	for _, p := range a.Phrases() {
		if p == text {
			n++
		}
	}
	return n
}

func (a *RecordingAnnouncer) Last() string {
	phrases := a.Phrases()
	if len(phrases) == 0 {
		return ""
	}
	return phrases[len(phrases)-1]
}

func (a *RecordingAnnouncer) Cancels() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.cancels
}

// RecordingDisplay keeps the latest countdown and status text.
type RecordingDisplay struct {
	mutex     sync.Mutex
	countdown string
	status    string
}

func (d *RecordingDisplay) ShowCountdown(text string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.countdown = text
}

func (d *RecordingDisplay) ShowStatus(text string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.status = text
}

func (d *RecordingDisplay) Countdown() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.countdown
}

func (d *RecordingDisplay) Status() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.status
}
