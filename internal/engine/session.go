package engine

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/verte-zerg/lyritype/internal/lyrics"
	"github.com/verte-zerg/lyritype/internal/matcher"
	"github.com/verte-zerg/lyritype/internal/model"
)

// Display receives rendering requests from the session. Empty prev or next
// means there is no neighbouring line.
type Display interface {
	RenderLyricContext(prev, active, next string)
	RenderTypedHighlight(segments []matcher.Segment)
	ClearDisplay()
}

type nopDisplay struct{}

func (nopDisplay) RenderLyricContext(string, string, string) {}
func (nopDisplay) RenderTypedHighlight([]matcher.Segment)    {}
func (nopDisplay) ClearDisplay()                             {}

// Transition describes what a position update did.
type Transition int

// Transitions reported by OnPositionUpdate.
const (
	NoChange Transition = iota
	Activated
	Switched
	Deactivated
)

func (t Transition) String() string {
	switch t {
	case Activated:
		return "activated"
	case Switched:
		return "switched"
	case Deactivated:
		return "deactivated"
	default:
		return "none"
	}
}

// Options configures a Session.
type Options struct {
	Tolerance    float64
	CollectStats bool
}

// Session owns all mutable state of one playback attempt: the active line,
// its match state and the accuracy aggregator. It is not safe for
// concurrent use; callers deliver position updates and keystrokes serially.
type Session struct {
	lines    []model.TimedLine
	resolver *lyrics.Resolver
	opts     Options
	display  Display
	agg      *Aggregator

	active int
	typed  string
	result matcher.Result
	ended  bool
}

// NewSession creates an idle session. A nil display discards rendering.
func NewSession(lines []model.TimedLine, opts Options, display Display) *Session {
	if display == nil {
		display = nopDisplay{}
	}
	return &Session{
		lines:    lines,
		resolver: lyrics.NewResolver(lines, opts.Tolerance),
		opts:     opts,
		display:  display,
		agg:      NewAggregator(lyrics.TotalMeaningful(lines)),
		active:   -1,
	}
}

// Lines returns the session's track lines.
func (s *Session) Lines() []model.TimedLine {
	return s.lines
}

// Options returns the session options.
func (s *Session) Options() Options {
	return s.opts
}

// ActiveIndex returns the active line index, if any.
func (s *Session) ActiveIndex() (int, bool) {
	return s.active, s.active >= 0
}

// TypingEnabled reports whether keystrokes are currently accepted.
func (s *Session) TypingEnabled() bool {
	return s.active >= 0 && !s.ended
}

// Ended reports whether the session was closed by OnMediaEnd.
func (s *Session) Ended() bool {
	return s.ended
}

// Target returns the active line text, or "" when idle.
func (s *Session) Target() string {
	if s.active < 0 {
		return ""
	}
	return s.lines[s.active].Text
}

// Typed returns the current input for the active line.
func (s *Session) Typed() string {
	return s.typed
}

// Highlight returns the latest match result for the active line.
func (s *Session) Highlight() matcher.Result {
	return s.result
}

// Stats returns the running session totals.
func (s *Session) Stats() model.SessionStats {
	return s.agg.Stats()
}

// LineStats returns the finalized line stats ordered by index.
func (s *Session) LineStats() []model.LineStat {
	return s.agg.Lines()
}

// Summary summarizes the session so far.
func (s *Session) Summary() model.Summary {
	return s.agg.Summarize()
}

// OnPositionUpdate resolves the active line for position t and performs any
// resulting transition. Updates after OnMediaEnd are ignored until Restart.
func (s *Session) OnPositionUpdate(t float64) Transition {
	if s.ended {
		return NoChange
	}
	next, ok := s.resolver.Resolve(t)
	switch {
	case s.active < 0 && !ok:
		return NoChange
	case s.active < 0:
		s.activate(next)
		return Activated
	case !ok:
		s.finalize()
		s.deactivate()
		return Deactivated
	case next == s.active:
		return NoChange
	default:
		s.finalize()
		s.activate(next)
		return Switched
	}
}

// OnKeystroke replaces the input for the active line with text and
// recomputes the highlight. It reports false when typing is disabled.
func (s *Session) OnKeystroke(text string) bool {
	if !s.TypingEnabled() {
		return false
	}
	s.typed = text
	s.result = matcher.Match(text, s.lines[s.active].Text)
	s.display.RenderTypedHighlight(s.result.Segments)
	return true
}

// OnMediaEnd finalizes the active line, goes idle and returns the summary.
func (s *Session) OnMediaEnd() model.Summary {
	if !s.ended {
		if s.active >= 0 {
			s.finalize()
			s.deactivate()
		}
		s.ended = true
	}
	return s.agg.Summarize()
}

// Restart drops all progress: match state, line stats and totals.
func (s *Session) Restart() {
	s.agg.Reset()
	s.deactivate()
	s.ended = false
}

func (s *Session) activate(i int) {
	s.active = i
	s.typed = ""
	s.result = matcher.Match("", s.lines[i].Text)
	prev, active, next := lyrics.Context(s.lines, i)
	s.display.RenderLyricContext(prev, active, next)
	s.display.RenderTypedHighlight(s.result.Segments)
}

func (s *Session) deactivate() {
	s.active = -1
	s.typed = ""
	s.result = matcher.Result{}
	s.display.ClearDisplay()
}

func (s *Session) finalize() model.LineStat {
	target := s.lines[s.active].Text
	total := matcher.CountMeaningful(target)
	correct := s.result.CorrectCount
	missed := total - correct
	if missed < 0 {
		missed = 0
	}
	stat := model.LineStat{
		LineIndex:       s.active,
		TotalMeaningful: total,
		Correct:         correct,
		Missed:          missed,
		Similarity:      similarity(s.typed, target),
	}
	if s.opts.CollectStats {
		s.agg.Accumulate(stat)
	}
	return stat
}

func similarity(typed, target string) float64 {
	if typed == "" {
		return 0
	}
	return matchr.JaroWinkler(strings.ToLower(typed), strings.ToLower(target), false)
}
