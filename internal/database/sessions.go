package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/models"
)

// Stats summarizes the recorded history.
type Stats struct {
	Sessions       int
	Completed      int
	Stopped        int
	WorkoutMinutes int
	LastStartedAt  time.Time
}

// RecordSession stores rec and its intervals in one transaction.
func (d *Database) RecordSession(ctx context.Context, rec models.SessionRecord) error {
	_, err := d.AddSession(ctx, rec)
	return err
}

// AddSession stores rec and returns its new ID.
func (d *Database) AddSession(ctx context.Context, rec models.SessionRecord) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		var id int64
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO sessions (started_at, ended_at, outcome, prep_minutes, intervals_completed, speed_multiplier)
				VALUES (?, ?, ?, ?, ?, ?)`,
				rec.StartedAt.UTC(), rec.EndedAt.UTC(), string(rec.Outcome), rec.PrepMinutes, rec.IntervalsCompleted, rec.SpeedMultiplier)
			if err != nil {
				return err
			}
			if id, err = res.LastInsertId(); err != nil {
				return err
			}
			for i, iv := range rec.Intervals {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO session_intervals (session_id, position, workout_minutes, break_minutes) VALUES (?, ?, ?, ?)",
					id, i, iv.WorkoutMinutes, iv.BreakMinutes); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return 0, wrapErr(EntitySession, "record", 0, err)
		}
		return id, nil
	})
}

// RecentSessions returns up to limit sessions, newest first.
func (d *Database) RecentSessions(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.SessionRecord, error) {
		if limit <= 0 {
			limit = -1
		}
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, started_at, ended_at, outcome, prep_minutes, intervals_completed, speed_multiplier
			FROM sessions
			ORDER BY started_at DESC, id DESC
			LIMIT ?`, limit)
		if err != nil {
			return nil, wrapErr(EntitySession, "list", 0, err)
		}
		records, err := scanSessions(rows)
		if err != nil {
			return nil, wrapErr(EntitySession, "list", 0, err)
		}
		for i := range records {
			intervals, err := d.sessionIntervals(ctx, records[i].ID)
			if err != nil {
				return nil, wrapErr(EntitySession, "list", records[i].ID, err)
			}
			records[i].Intervals = intervals
		}
		return records, nil
	})
}

// GetSession loads one session by ID.
func (d *Database) GetSession(ctx context.Context, id int64) (models.SessionRecord, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.SessionRecord, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT id, started_at, ended_at, outcome, prep_minutes, intervals_completed, speed_multiplier
			FROM sessions WHERE id = ?`, id)
		if err != nil {
			return models.SessionRecord{}, wrapErr(EntitySession, "get", id, err)
		}
		records, err := scanSessions(rows)
		if err != nil {
			return models.SessionRecord{}, wrapErr(EntitySession, "get", id, err)
		}
		if len(records) == 0 {
			return models.SessionRecord{}, wrapErr(EntitySession, "get", id, ErrNotFound)
		}
		rec := records[0]
		if rec.Intervals, err = d.sessionIntervals(ctx, id); err != nil {
			return models.SessionRecord{}, wrapErr(EntitySession, "get", id, err)
		}
		return rec, nil
	})
}

// SessionStats aggregates the whole history. Workout minutes count only
// the intervals a session got through.
func (d *Database) SessionStats(ctx context.Context) (Stats, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (Stats, error) {
		var s Stats
		var last sql.NullString
		err := d.DB.QueryRowContext(ctx, `
			SELECT COUNT(1),
				COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
				COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
				MAX(started_at)
			FROM sessions`, string(models.OutcomeCompleted), string(models.OutcomeStopped)).
			Scan(&s.Sessions, &s.Completed, &s.Stopped, &last)
		if err != nil {
			return Stats{}, wrapErr(EntitySession, "stats", 0, err)
		}
		if last.Valid {
			s.LastStartedAt = parseTimestamp(last.String)
		}
		err = d.DB.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(i.workout_minutes), 0)
			FROM session_intervals i
			JOIN sessions s ON s.id = i.session_id
			WHERE i.position < s.intervals_completed`).Scan(&s.WorkoutMinutes)
		if err != nil {
			return Stats{}, wrapErr(EntitySession, "stats", 0, err)
		}
		return s, nil
	})
}

// ClearHistory deletes every recorded session.
func (d *Database) ClearHistory(ctx context.Context) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "DELETE FROM session_intervals"); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "DELETE FROM sessions")
			return err
		})
		return wrapErr(EntitySession, "clear", 0, err)
	})
}

func (d *Database) sessionIntervals(ctx context.Context, id int64) ([]models.IntervalSpec, error) {
	rows, err := d.DB.QueryContext(ctx,
		"SELECT workout_minutes, break_minutes FROM session_intervals WHERE session_id = ? ORDER BY position ASC", id)
	if err != nil {
		return nil, err
	}
	return scanIntervals(rows)
}

func scanSessions(rows *sql.Rows) ([]models.SessionRecord, error) {
	defer rows.Close()
	var records []models.SessionRecord
	for rows.Next() {
		var rec models.SessionRecord
		var outcome string
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.EndedAt, &outcome, &rec.PrepMinutes, &rec.IntervalsCompleted, &rec.SpeedMultiplier); err != nil {
			return nil, err
		}
		rec.Outcome = models.Outcome(outcome)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanIntervals(rows *sql.Rows) ([]models.IntervalSpec, error) {
	defer rows.Close()
	var out []models.IntervalSpec
	for rows.Next() {
		var iv models.IntervalSpec
		if err := rows.Scan(&iv.WorkoutMinutes, &iv.BreakMinutes); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// parseTimestamp reads the text form go-sqlite3 stores time.Time values in.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05Z07:00",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
