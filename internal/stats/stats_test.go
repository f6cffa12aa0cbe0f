package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lyritype/internal/model"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{50, 50, 50}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 100}); got != " @" {
		t.Fatalf("expected min/max sparkline, got %q", got)
	}
}

func TestLineAccuracyZeroTotal(t *testing.T) {
	if got := LineAccuracy(model.LineStat{}); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestRenderSummary(t *testing.T) {
	sum := model.Summary{
		AccuracyPercent: 83,
		TotalMeaningful: 100,
		Correct:         83,
		Missed:          17,
		Lines: []model.LineStat{
			{LineIndex: 0, TotalMeaningful: 50, Correct: 50},
			{LineIndex: 1, TotalMeaningful: 50, Correct: 33, Missed: 17},
		},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sum, 3); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Accuracy: 83.0%", "Correct: 83 / 100", "Missed: 17", "Lines: 2 of 3", "Trend: [@ ]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLineTable(t *testing.T) {
	lines := []model.TimedLine{
		{Text: "hello world", Start: 0, End: 1},
		{Text: strings.Repeat("la ", 30), Start: 2, End: 3},
	}
	stats := []model.LineStat{
		{LineIndex: 0, TotalMeaningful: 10, Correct: 10, Similarity: 1},
		{LineIndex: 1, TotalMeaningful: 60, Correct: 30, Missed: 30, Similarity: 0.5},
	}
	var buf bytes.Buffer
	if err := RenderLineTable(&buf, stats, lines); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "100.0%") || !strings.Contains(out, "50.0%") {
		t.Fatalf("table missing accuracies:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected long text to be truncated:\n%s", out)
	}

	buf.Reset()
	if err := RenderLineTable(&buf, nil, lines); err != nil {
		t.Fatalf("render empty table: %v", err)
	}
	if !strings.Contains(buf.String(), "No lines were typed.") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestRenderTrackList(t *testing.T) {
	tracks := []model.TrackInfo{
		{ID: "0123456789abcdef", Title: "Song", LineCount: 12, Duration: 185, ImportedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)},
	}
	var buf bytes.Buffer
	if err := RenderTrackList(&buf, tracks); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "Title", "01234567 ", "Song", "12", "3:05", "2024-03-01 12:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("track list missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "89abcdef") {
		t.Fatalf("expected shortened id:\n%s", out)
	}
}
