// Package matcher computes typing feedback for a single lyric line.
package matcher

import "unicode"

// Class is the visual class of one target character.
type Class int

const (
	// Faint marks target characters not (yet) matched.
	Faint Class = iota
	// Matched marks target characters consumed by a typed character.
	Matched
)

func (c Class) String() string {
	switch c {
	case Matched:
		return "matched"
	default:
		return "faint"
	}
}

// Segment is one target character with its class.
type Segment struct {
	Char  rune
	Class Class
}

// Result is the outcome of matching typed input against a target line.
type Result struct {
	Segments     []Segment
	CorrectCount int
}

// Text reassembles the target from the segments.
func (r Result) Text() string {
	runes := make([]rune, len(r.Segments))
	for i, seg := range r.Segments {
		runes[i] = seg.Char
	}
	return string(runes)
}

// MatchedCount returns the number of matched segments, meaningful or not.
func (r Result) MatchedCount() int {
	n := 0
	for _, seg := range r.Segments {
		if seg.Class == Matched {
			n++
		}
	}
	return n
}

// Match walks typed left to right. Each typed rune consumes the next
// case-insensitively equal rune of the unconsumed target suffix; runes that
// appear nowhere in that suffix are dropped. Skipped target runes stay faint.
// There is one segment per target rune, so the result is a pure function of
// its arguments.
func Match(typed, target string) Result {
	targetRunes := []rune(target)
	out := Result{Segments: make([]Segment, 0, len(targetRunes))}
	pos := 0
	for _, t := range typed {
		if pos >= len(targetRunes) {
			break
		}
		want := unicode.ToLower(t)
		for l := pos; l < len(targetRunes); l++ {
			if unicode.ToLower(targetRunes[l]) != want {
				continue
			}
			for k := pos; k < l; k++ {
				out.Segments = append(out.Segments, Segment{Char: targetRunes[k], Class: Faint})
			}
			out.Segments = append(out.Segments, Segment{Char: targetRunes[l], Class: Matched})
			if IsMeaningful(targetRunes[l]) {
				out.CorrectCount++
			}
			pos = l + 1
			break
		}
	}
	for k := pos; k < len(targetRunes); k++ {
		out.Segments = append(out.Segments, Segment{Char: targetRunes[k], Class: Faint})
	}
	return out
}

// IsMeaningful reports whether r counts toward accuracy: letters, digits and underscore.
func IsMeaningful(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CountMeaningful counts the meaningful runes of s.
func CountMeaningful(s string) int {
	n := 0
	for _, r := range s {
		if IsMeaningful(r) {
			n++
		}
	}
	return n
}
