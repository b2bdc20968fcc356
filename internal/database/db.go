// Package database keeps the session history and the remembered interval
// plan in a local SQLite file.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/vrtimer/internal/config"
	log "github.com/echocat/slf4g"
	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	DB     *sql.DB
	dbFile string
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		outcome TEXT NOT NULL,
		prep_minutes INTEGER NOT NULL DEFAULT 0,
		intervals_completed INTEGER NOT NULL DEFAULT 0,
		speed_multiplier REAL NOT NULL DEFAULT 1
	);`,
	`CREATE TABLE IF NOT EXISTS session_intervals (
		session_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		workout_minutes INTEGER NOT NULL,
		break_minutes INTEGER NOT NULL,
		PRIMARY KEY(session_id, position),
		FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS plan_intervals (
		position INTEGER PRIMARY KEY,
		workout_minutes INTEGER NOT NULL,
		break_minutes INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);`,
}

// Open opens (creating if needed) the history database at path and brings
// its schema up to date.
func Open(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	d := &Database{DB: db, dbFile: path}
	if err := d.withDBContext(ctx, func(ctx context.Context) error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := d.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.With("file", path).Debug("History database ready.")
	return d, nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Path is the file the database was opened from.
func (d *Database) Path() string {
	return d.dbFile
}

func (d *Database) migrate(ctx context.Context) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		for _, query := range schema {
			if _, err := d.DB.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}
		}
		return nil
	})
}

// WithTx runs fn inside a transaction, rolling back when fn fails.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.WithError(rbErr).Warn("Rollback failed.")
		}
		return err
	}
	return tx.Commit()
}

func (d *Database) withDBContext(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := withDBContextResult(d, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// withDBContextResult bounds fn by config.DBTimeout unless ctx already
// carries a deadline.
func withDBContextResult[T any](d *Database, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if d == nil || d.DB == nil {
		return zero, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.DBTimeout)
		defer cancel()
	}
	return fn(ctx)
}
