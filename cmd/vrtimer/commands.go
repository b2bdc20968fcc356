package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	log "github.com/echocat/slf4g"

	"github.com/akyairhashvil/vrtimer/internal/config"
	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/report"
	"github.com/akyairhashvil/vrtimer/internal/server"
	"github.com/akyairhashvil/vrtimer/internal/util"
)

func (a *application) serve() error {
	cfg, err := a.configuration()
	if err != nil {
		return err
	}
	env, err := config.ParseServerEnv()
	if err != nil {
		return err
	}
	port := env.Port
	if a.port > 0 {
		port = a.port
	}
	srv := server.NewServer(server.Options{
		Host:            env.Host,
		Port:            port,
		SpeedMultiplier: cfg.EffectiveSpeed(config.DefaultSpeedMultiplier),
	})
	return srv.Run(a.ctx)
}

func (a *application) history() error {
	cfg, err := a.configuration()
	if err != nil {
		return err
	}
	db, err := a.openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() {
		util.LogError("Cannot close history.", db.Close())
	}()

	if a.clear {
		if err := db.ClearHistory(a.ctx); err != nil {
			return err
		}
		log.With("file", db.Path()).Info("History cleared.")
		fmt.Fprintln(a.out, "History cleared.")
		return nil
	}

	sessions, err := db.RecentSessions(a.ctx, a.limit)
	if err != nil {
		return err
	}
	stats, err := db.SessionStats(a.ctx)
	if err != nil {
		return err
	}
	return writeHistory(a.out, stats, sessions)
}

func writeHistory(w io.Writer, stats database.Stats, sessions []models.SessionRecord) error {
	if stats.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	rows := make([][]string, 0, len(sessions))
	for _, rec := range sessions {
		rows = append(rows, []string{
			rec.StartedAt.Local().Format("2006-01-02 15:04"),
			util.FormatDuration(rec.Duration()),
			string(rec.Outcome),
			fmt.Sprintf("%d/%d", rec.IntervalsCompleted, len(rec.Intervals)),
			fmt.Sprintf("%gx", rec.SpeedMultiplier),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STARTED", "LENGTH", "OUTCOME", "INTERVALS", "SPEED").
		Rows(rows...)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d sessions (%d completed, %d stopped), %s of workouts.\n",
		stats.Sessions, stats.Completed, stats.Stopped,
		util.FormatDuration(time.Duration(stats.WorkoutMinutes)*time.Minute))
	return err
}

func (a *application) report() error {
	cfg, err := a.configuration()
	if err != nil {
		return err
	}
	db, err := a.openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() {
		util.LogError("Cannot close history.", db.Close())
	}()

	sessions, err := db.RecentSessions(a.ctx, 0)
	if err != nil {
		return err
	}
	stats, err := db.SessionStats(a.ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	out := a.reportOut
	if out == "" {
		out = filepath.Join(util.ReportsDir(config.AppName), report.DefaultFileName(now))
	}
	if err := report.WriteFile(out, report.Data{Generated: now, Stats: stats, Sessions: sessions}); err != nil {
		return err
	}
	log.With("file", out).With("sessions", len(sessions)).Info("Report written.")
	fmt.Fprintln(a.out, out)
	return nil
}
