package generator

import (
	"strings"
	"testing"
	"unicode"

	"github.com/verte-zerg/lyritype/internal/lyrics"
	"github.com/verte-zerg/lyritype/internal/model"
)

var testWords = []string{"love", "night", "fire", "heart", "road"}

func TestLineWordCountAndCaps(t *testing.T) {
	g := NewWithSeed(7)
	for i := 0; i < 20; i++ {
		line := g.Line(testWords, 4)
		if n := len(strings.Fields(line)); n != 4 {
			t.Fatalf("expected 4 words, got %d in %q", n, line)
		}
		if !unicode.IsUpper([]rune(line)[0]) {
			t.Fatalf("expected capitalized first word in %q", line)
		}
	}
}

func TestTrackTiming(t *testing.T) {
	g := NewWithSeed(1)
	cfg := model.DemoConfig{WordsPerLine: 3, Lines: 5, WPM: 60, Gap: 1.5}
	track, err := g.Track(testWords, cfg)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if len(track.Lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(track.Lines))
	}
	if err := lyrics.Validate(track.Lines); err != nil {
		t.Fatalf("generated track is invalid: %v", err)
	}
	first := track.Lines[0]
	if first.Start != leadIn {
		t.Fatalf("expected first line at %v, got %v", leadIn, first.Start)
	}
	// 60 wpm is 5 chars per second.
	want := float64(len([]rune(first.Text))) / 5
	if got := first.End - first.Start; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("expected duration %v, got %v", want, got)
	}
	for i := 1; i < len(track.Lines); i++ {
		gap := track.Lines[i].Start - track.Lines[i-1].End
		if gap < 1.5-1e-9 || gap > 1.5+1e-9 {
			t.Fatalf("expected 1.5s gap, got %v", gap)
		}
	}
}

func TestTrackRejectsBadConfig(t *testing.T) {
	g := NewWithSeed(1)
	if _, err := g.Track(nil, model.DemoConfig{WordsPerLine: 1, Lines: 1, WPM: 10}); err == nil {
		t.Fatalf("expected error for empty word list")
	}
	if _, err := g.Track(testWords, model.DemoConfig{WordsPerLine: 1, Lines: 1}); err == nil {
		t.Fatalf("expected error for zero wpm")
	}
}
