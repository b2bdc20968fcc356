// Package report renders the session history as a PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/vrtimer/internal/database"
	"github.com/akyairhashvil/vrtimer/internal/models"
	"github.com/akyairhashvil/vrtimer/internal/util"
	"github.com/go-pdf/fpdf"
)

// Data is everything a report shows.
type Data struct {
	Generated time.Time
	Stats     database.Stats
	Sessions  []models.SessionRecord
}

// WritePDF renders data to w.
func WritePDF(w io.Writer, data Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Workout history", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Workout History")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated "+data.Generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	// Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, line := range summaryLines(data.Stats) {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Sessions
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Sessions")
	pdf.Ln(8)
	if len(data.Sessions) == 0 {
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, "  - No sessions recorded.")
		pdf.Ln(8)
	} else {
		writeSessionTable(pdf, data.Sessions)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// WriteFile renders data into a new file at path, creating its directory.
func WriteFile(path string, data Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %q: %w", path, err)
	}
	if err := WritePDF(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// DefaultFileName names a report after the day it was generated.
func DefaultFileName(generated time.Time) string {
	return fmt.Sprintf("workout_report_%s.pdf", generated.Format("2006-01-02"))
}

func summaryLines(s database.Stats) []string {
	lines := []string{
		fmt.Sprintf("Sessions: %d (%d completed, %d stopped)", s.Sessions, s.Completed, s.Stopped),
		fmt.Sprintf("Workout time: %s", util.FormatDuration(time.Duration(s.WorkoutMinutes)*time.Minute)),
	}
	if !s.LastStartedAt.IsZero() {
		lines = append(lines, "Last session: "+s.LastStartedAt.Local().Format("2006-01-02 15:04"))
	}
	return lines
}

var columns = []struct {
	title string
	width float64
}{
	{"Started", 38},
	{"Length", 22},
	{"Outcome", 26},
	{"Intervals", 70},
	{"Done", 16},
	{"Speed", 18},
}

func writeSessionTable(pdf *fpdf.Fpdf, sessions []models.SessionRecord) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, rec := range sessions {
		cells := sessionRow(rec)
		for i, col := range columns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func sessionRow(rec models.SessionRecord) []string {
	return []string{
		rec.StartedAt.Local().Format("2006-01-02 15:04"),
		util.FormatDuration(rec.Duration()),
		string(rec.Outcome),
		intervalSummary(rec),
		fmt.Sprintf("%d/%d", rec.IntervalsCompleted, len(rec.Intervals)),
		fmt.Sprintf("%gx", rec.SpeedMultiplier),
	}
}

// intervalSummary lists intervals as workout/break minutes, "30/1, 20/2".
func intervalSummary(rec models.SessionRecord) string {
	parts := make([]string, 0, len(rec.Intervals)+1)
	if rec.PrepMinutes > 0 {
		parts = append(parts, fmt.Sprintf("prep %d", rec.PrepMinutes))
	}
	for _, iv := range rec.Intervals {
		parts = append(parts, fmt.Sprintf("%d/%d", iv.WorkoutMinutes, iv.BreakMinutes))
	}
	summary := strings.Join(parts, ", ")
	if len(summary) > 40 {
		summary = summary[:39] + "..."
	}
	return summary
}
