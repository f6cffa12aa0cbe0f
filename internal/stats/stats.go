// Package stats formats session accuracy for reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lyritype/internal/engine"
	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/player"
)

const (
	sparkChars   = " .:-=+*#%@"
	maxTextWidth = 40
)

// LineAccuracy returns the accuracy of one line in percent.
func LineAccuracy(stat model.LineStat) float64 {
	return engine.AccuracyPercent(stat.Correct, stat.TotalMeaningful)
}

// LineAccuracies returns per-line accuracy in line order.
func LineAccuracies(stats []model.LineStat) []float64 {
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = LineAccuracy(s)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the session totals.
func RenderSummary(w io.Writer, sum model.Summary, lineCount int) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.1f%%\n", sum.AccuracyPercent); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct: %d / %d\n", sum.Correct, sum.TotalMeaningful); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Missed: %d\n", sum.Missed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lines: %d of %d\n", len(sum.Lines), lineCount); err != nil {
		return err
	}
	if len(sum.Lines) > 1 {
		if _, err := fmt.Fprintf(w, "Trend: [%s]\n", Sparkline(LineAccuracies(sum.Lines))); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// LineRows returns the per-line table cells used by both the plain-text
// report and the TUI table.
func LineRows(stats []model.LineStat, lines []model.TimedLine) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		text := ""
		if s.LineIndex >= 0 && s.LineIndex < len(lines) {
			text = runewidth.Truncate(lines[s.LineIndex].Text, maxTextWidth, "…")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.LineIndex+1),
			fmt.Sprintf("%.1f%%", LineAccuracy(s)),
			fmt.Sprintf("%d", s.Correct),
			fmt.Sprintf("%d", s.Missed),
			fmt.Sprintf("%.2f", s.Similarity),
			text,
		})
	}
	return rows
}

// LineHeaders are the column titles of the per-line table.
var LineHeaders = []string{"Line", "Accuracy", "Correct", "Missed", "Similarity", "Text"}

// RenderLineTable prints per-line results.
func RenderLineTable(w io.Writer, stats []model.LineStat, lines []model.TimedLine) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No lines were typed.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Line"); err != nil {
		return err
	}
	table := textTable{
		headers:    LineHeaders,
		rows:       LineRows(stats, lines),
		rightAlign: map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true},
	}
	return table.write(w)
}

// RenderTrackInfo prints a validation report for a loaded track.
func RenderTrackInfo(w io.Writer, track model.Track, totalMeaningful int, warnings []error) error {
	title := track.Title
	if title == "" {
		title = "(untitled)"
	}
	if _, err := fmt.Fprintf(w, "Title: %s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lines: %d\n", len(track.Lines)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Duration: %.2fs\n", track.Duration()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Meaningful chars: %d\n", totalMeaningful); err != nil {
		return err
	}
	for _, warn := range warnings {
		if _, err := fmt.Fprintf(w, "warning: %v\n", warn); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrackList prints the library listing.
func RenderTrackList(w io.Writer, tracks []model.TrackInfo) error {
	headers := []string{"ID", "Title", "Lines", "Length", "Imported"}
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		id := t.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{
			id,
			runewidth.Truncate(t.Title, maxTextWidth, "…"),
			fmt.Sprintf("%d", t.LineCount),
			player.FormatTime(t.Duration),
			t.ImportedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table := textTable{headers: headers, rows: rows, rightAlign: map[int]bool{2: true, 3: true}}
	return table.write(w)
}
