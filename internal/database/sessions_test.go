package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/testutil"
)

func TestRecordAndListSessions(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	base := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	older := testutil.NewSessionRecord().
		WithStart(base, 31*time.Minute).
		Build()
	newer := testutil.NewSessionRecord().
		WithStart(base.Add(24*time.Hour), 10*time.Minute).
		WithOutcome(models.OutcomeStopped).
		WithIntervals(testutil.NewIntervals().Add(20, 2).Add(10, 1).Build(), 0).
		Build()

	if err := db.RecordSession(ctx, older); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if err := db.RecordSession(ctx, newer); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	records, err := db.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(records))
	}
	got := records[0]
	if got.Outcome != models.OutcomeStopped || !got.StartedAt.Equal(newer.StartedAt) || !got.EndedAt.Equal(newer.EndedAt) {
		t.Fatalf("unexpected newest session: %+v", got)
	}
	if len(got.Intervals) != 2 || got.Intervals[0].WorkoutMinutes != 20 || got.Intervals[1].BreakMinutes != 1 {
		t.Fatalf("unexpected intervals: %+v", got.Intervals)
	}
	if records[1].Outcome != models.OutcomeCompleted || records[1].IntervalsCompleted != 1 {
		t.Fatalf("unexpected oldest session: %+v", records[1])
	}

	limited, err := db.RecentSessions(ctx, 1)
	if err != nil {
		t.Fatalf("RecentSessions(1) failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != got.ID {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	rec := testutil.NewSessionRecord().Build()
	id, err := db.AddSession(ctx, rec)
	if err != nil {
		t.Fatalf("AddSession failed: %v", err)
	}
	got, err := db.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ID != id || got.PrepMinutes != rec.PrepMinutes || got.SpeedMultiplier != rec.SpeedMultiplier || len(got.Intervals) != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := db.GetSession(ctx, id+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	empty, err := db.SessionStats(ctx)
	if err != nil {
		t.Fatalf("SessionStats failed: %v", err)
	}
	if empty.Sessions != 0 || !empty.LastStartedAt.IsZero() {
		t.Fatalf("unexpected empty stats: %+v", empty)
	}

	base := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	records := []models.SessionRecord{
		testutil.NewSessionRecord().
			WithStart(base, time.Hour).
			WithIntervals(testutil.NewIntervals().Add(30, 1).Add(20, 1).Build(), 2).
			Build(),
		testutil.NewSessionRecord().
			WithStart(base.Add(time.Hour), 20*time.Minute).
			WithOutcome(models.OutcomeStopped).
			WithIntervals(testutil.NewIntervals().Add(15, 1).Add(15, 1).Build(), 1).
			Build(),
	}
	for _, rec := range records {
		if err := db.RecordSession(ctx, rec); err != nil {
			t.Fatalf("RecordSession failed: %v", err)
		}
	}

	stats, err := db.SessionStats(ctx)
	if err != nil {
		t.Fatalf("SessionStats failed: %v", err)
	}
	if stats.Sessions != 2 || stats.Completed != 1 || stats.Stopped != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.WorkoutMinutes != 65 {
		t.Fatalf("expected 65 workout minutes, got %d", stats.WorkoutMinutes)
	}
	if !stats.LastStartedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected last start %v", stats.LastStartedAt)
	}
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.RecordSession(ctx, testutil.NewSessionRecord().Build()); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if err := db.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	records, err := db.RecentSessions(ctx, 0)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d", len(records))
	}
	var count int
	if err := db.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM session_intervals").Scan(&count); err != nil {
		t.Fatalf("count intervals failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected intervals removed, got %d", count)
	}
}

func TestConcurrentRecordSession(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := testutil.NewSessionRecord().
				WithStart(time.Date(2026, 3, 14, 7, i, 0, 0, time.UTC), time.Minute).
				Build()
			if err := db.RecordSession(ctx, rec); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent record failed: %v", err)
	}
	records, err := db.RecentSessions(ctx, 0)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("expected 10 sessions, got %d", len(records))
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-03-14 07:30:00+00:00",
		"2026-03-14T07:30:00+00:00",
		"2026-03-14 07:30:00",
		"2026-03-14T07:30:00Z",
	} {
		if got := parseTimestamp(in); !got.Equal(want) {
			t.Fatalf("parseTimestamp(%q) = %v", in, got)
		}
	}
	if !parseTimestamp("yesterday").IsZero() {
		t.Fatalf("expected zero time for garbage")
	}
}
