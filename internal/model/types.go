// Package model defines shared data structures.
package model

import "time"

// DefaultTolerance pads every line window on both sides, in seconds.
const DefaultTolerance = 0.5

// TimedLine is one lyric segment with its activity window in seconds.
type TimedLine struct {
	Text  string  `json:"text" yaml:"text"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Track is a titled list of timed lines.
type Track struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	Source     string      `json:"source,omitempty" yaml:"source,omitempty"`
	ImportedAt time.Time   `json:"imported_at,omitempty" yaml:"imported_at,omitempty"`
	Lines      []TimedLine `json:"lines" yaml:"lines"`
}

// Duration returns the end of the last-ending line.
func (t Track) Duration() float64 {
	var end float64
	for _, l := range t.Lines {
		if l.End > end {
			end = l.End
		}
	}
	return end
}

// Config defines play settings.
type Config struct {
	Tolerance    float64
	CollectStats bool
	Theme        string
	TickMs       int
	SeekStep     float64
	LeadOut      float64
}

// DemoConfig defines how a practice track is synthesized.
type DemoConfig struct {
	WordsPerLine int
	Lines        int
	WPM          float64
	Gap          float64
}

// LineStat captures the outcome of one finalized line.
type LineStat struct {
	LineIndex       int
	TotalMeaningful int
	Correct         int
	Missed          int
	Similarity      float64
}

// SessionStats holds running totals for one playback session.
type SessionStats struct {
	TotalMeaningful int
	Correct         int
	Missed          int
}

// Summary is emitted when a session ends.
type Summary struct {
	AccuracyPercent float64
	TotalMeaningful int
	Correct         int
	Missed          int
	Lines           []LineStat
}

// TrackInfo summarizes a library track for listing.
type TrackInfo struct {
	ID         string
	Title      string
	Source     string
	LineCount  int
	Duration   float64
	ImportedAt time.Time
}
