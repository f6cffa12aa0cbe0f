// Package lyrics loads timed lyric tracks and resolves the active line.
package lyrics

import (
	"math"

	"github.com/verte-zerg/lyritype/internal/model"
)

// Resolve returns the index of the first line whose window, padded by
// tolerance on both sides, contains position. Adjacent padded windows may
// overlap; the lower index wins.
func Resolve(position float64, lines []model.TimedLine, tolerance float64) (int, bool) {
	if math.IsNaN(position) {
		return -1, false
	}
	for i, l := range lines {
		if position >= l.Start-tolerance && position <= l.End+tolerance {
			return i, true
		}
	}
	return -1, false
}

// Resolver resolves positions against a fixed line list. When the lines are
// sorted by start, the scan stops at the first line starting after position.
type Resolver struct {
	lines     []model.TimedLine
	tolerance float64
	sorted    bool
}

// NewResolver builds a Resolver for lines.
func NewResolver(lines []model.TimedLine, tolerance float64) *Resolver {
	return &Resolver{
		lines:     lines,
		tolerance: tolerance,
		sorted:    SortedByStart(lines),
	}
}

// Lines returns the resolver's line list.
func (r *Resolver) Lines() []model.TimedLine {
	return r.lines
}

// Tolerance returns the padding applied to every window.
func (r *Resolver) Tolerance() float64 {
	return r.tolerance
}

// Resolve behaves exactly like the package-level Resolve.
func (r *Resolver) Resolve(position float64) (int, bool) {
	if !r.sorted {
		return Resolve(position, r.lines, r.tolerance)
	}
	if math.IsNaN(position) {
		return -1, false
	}
	for i, l := range r.lines {
		if position < l.Start-r.tolerance {
			return -1, false
		}
		if position <= l.End+r.tolerance {
			return i, true
		}
	}
	return -1, false
}

// SortedByStart reports whether line starts are non-decreasing.
func SortedByStart(lines []model.TimedLine) bool {
	for i := 1; i < len(lines); i++ {
		if lines[i].Start < lines[i-1].Start {
			return false
		}
	}
	return true
}
