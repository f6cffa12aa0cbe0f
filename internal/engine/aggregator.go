// Package engine drives line transitions and accuracy aggregation for a
// karaoke typing session.
package engine

import (
	"math"
	"sort"

	"github.com/verte-zerg/lyritype/internal/model"
)

// Aggregator accumulates finalized line stats into session totals.
type Aggregator struct {
	stats model.SessionStats
	lines map[int]model.LineStat
}

// NewAggregator returns an Aggregator for a track with total meaningful characters.
func NewAggregator(totalMeaningful int) *Aggregator {
	return &Aggregator{
		stats: model.SessionStats{TotalMeaningful: totalMeaningful},
		lines: map[int]model.LineStat{},
	}
}

// Accumulate adds a finalized line. Finalizing the same line again replaces
// its earlier contribution instead of adding to it.
func (a *Aggregator) Accumulate(stat model.LineStat) {
	if prev, ok := a.lines[stat.LineIndex]; ok {
		a.stats.Correct -= prev.Correct
		a.stats.Missed -= prev.Missed
	}
	a.lines[stat.LineIndex] = stat
	a.stats.Correct += stat.Correct
	a.stats.Missed += stat.Missed
}

// Stats returns the running totals.
func (a *Aggregator) Stats() model.SessionStats {
	return a.stats
}

// Line returns the stored stat for a line index.
func (a *Aggregator) Line(index int) (model.LineStat, bool) {
	stat, ok := a.lines[index]
	return stat, ok
}

// Lines returns the stored line stats ordered by line index.
func (a *Aggregator) Lines() []model.LineStat {
	out := make([]model.LineStat, 0, len(a.lines))
	for _, stat := range a.lines {
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LineIndex < out[j].LineIndex
	})
	return out
}

// Summarize computes the session summary.
func (a *Aggregator) Summarize() model.Summary {
	return model.Summary{
		AccuracyPercent: AccuracyPercent(a.stats.Correct, a.stats.TotalMeaningful),
		TotalMeaningful: a.stats.TotalMeaningful,
		Correct:         a.stats.Correct,
		Missed:          a.stats.Missed,
		Lines:           a.Lines(),
	}
}

// Reset zeroes the counters and clears the line stats. The track total is kept.
func (a *Aggregator) Reset() {
	a.stats.Correct = 0
	a.stats.Missed = 0
	a.lines = map[int]model.LineStat{}
}

// AccuracyPercent returns correct/total*100 rounded to one decimal, or 0 when total is 0.
func AccuracyPercent(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}
