// Package player provides a silent playback clock that stands in for an
// audio element: it advances in real time while playing and can be paused
// and seeked.
package player

import (
	"fmt"
	"math"
	"time"
)

// Clock is a pausable, seekable media clock with a fixed duration.
type Clock struct {
	duration float64
	now      func() time.Time

	base   float64
	anchor time.Time
	paused bool
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the wall clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// NewClock returns a paused clock at position 0.
func NewClock(duration float64, opts ...Option) *Clock {
	c := &Clock{
		duration: math.Max(duration, 0),
		now:      time.Now,
		paused:   true,
	}
	for _, o := range opts {
		o(c)
	}
	c.anchor = c.now()
	return c
}

// Duration returns the media length in seconds.
func (c *Clock) Duration() float64 {
	return c.duration
}

// Position returns the current position in seconds, clamped to the duration.
func (c *Clock) Position() float64 {
	pos := c.base
	if !c.paused {
		pos += c.now().Sub(c.anchor).Seconds()
	}
	return math.Min(pos, c.duration)
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Ended reports whether the position reached the end of the media.
func (c *Clock) Ended() bool {
	return c.Position() >= c.duration
}

// Play resumes the clock. Playing an ended clock starts over from 0.
func (c *Clock) Play() {
	if !c.paused {
		return
	}
	if c.Ended() {
		c.base = 0
	}
	c.anchor = c.now()
	c.paused = false
}

// Pause freezes the clock at its current position.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.base = c.Position()
	c.paused = true
}

// Seek jumps to seconds, clamped to [0, duration].
func (c *Clock) Seek(seconds float64) {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	c.base = math.Min(seconds, c.duration)
	c.anchor = c.now()
}

// FormatTime renders seconds as m:ss. Negative or NaN values render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "0:00"
	}
	if math.IsInf(seconds, 1) {
		return "--:--"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
