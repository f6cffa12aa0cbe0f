package stats

import (
	"bytes"
	"testing"
)

func TestTextTableAlignsColumns(t *testing.T) {
	table := textTable{
		headers: []string{"Line", "Accuracy", "Correct"},
		rows: [][]string{
			{"1", "97.5%", "12"},
			{"12", "8.0%", "3"},
		},
		rightAlign: map[int]bool{1: true, 2: true},
	}

	lines := table.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Line Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "1       97.5%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "12       8.0%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTextTableUsesDisplayWidth(t *testing.T) {
	lines := textTable{headers: []string{"Text", "N"}, rows: [][]string{{"日本", "1"}}}.lines()
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide-rune row: %q", lines[1])
	}
}

func TestTextTableTrimsTrailingPadding(t *testing.T) {
	var buf bytes.Buffer
	table := textTable{headers: []string{"A", "Long header"}, rows: [][]string{{"x", ""}}}
	if err := table.write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "A Long header\nx\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTextTableEmpty(t *testing.T) {
	if lines := (textTable{}).lines(); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
