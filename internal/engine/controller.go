package engine

import (
	"log/slog"

	"github.com/verte-zerg/lyritype/internal/model"
)

// Transport is the playback collaborator driving a session.
type Transport interface {
	Position() float64
	Play()
	Pause()
	Seek(seconds float64)
	Paused() bool
	Duration() float64
	Ended() bool
}

// TickResult reports what one tick did.
type TickResult struct {
	Position   float64
	Transition Transition
	Ended      bool
	Summary    model.Summary
}

// Controller binds a Session to a Transport. Every method runs to
// completion before the next one is called, so a transition always lands
// before the next keystroke is handled.
type Controller struct {
	session   *Session
	transport Transport
}

// NewController returns a Controller for session and transport.
func NewController(session *Session, transport Transport) *Controller {
	return &Controller{session: session, transport: transport}
}

// Session returns the controlled session.
func (c *Controller) Session() *Session {
	return c.session
}

// Transport returns the playback transport.
func (c *Controller) Transport() Transport {
	return c.transport
}

// Tick reads the playback position and feeds it to the session. When the
// transport reports the end of media the active line is finalized and the
// summary is returned with Ended set. That happens once per session.
func (c *Controller) Tick() TickResult {
	if c.session.Ended() {
		return TickResult{Position: c.transport.Position()}
	}
	pos := c.transport.Position()
	res := TickResult{Position: pos, Transition: c.session.OnPositionUpdate(pos)}
	if res.Transition != NoChange {
		idx, _ := c.session.ActiveIndex()
		slog.Debug("line transition", "transition", res.Transition.String(), "line", idx, "position", pos)
	}
	if c.transport.Ended() {
		c.transport.Pause()
		res.Ended = true
		res.Summary = c.session.OnMediaEnd()
		slog.Info("session ended",
			"accuracy", res.Summary.AccuracyPercent,
			"correct", res.Summary.Correct,
			"missed", res.Summary.Missed,
			"total", res.Summary.TotalMeaningful)
	}
	return res
}

// TogglePlay pauses a playing transport and resumes a paused one.
func (c *Controller) TogglePlay() {
	if c.session.Ended() {
		return
	}
	if c.transport.Paused() {
		c.transport.Play()
		return
	}
	c.transport.Pause()
}

// SeekBy moves the playback position by delta seconds, clamped to the media.
func (c *Controller) SeekBy(delta float64) {
	if c.session.Ended() {
		return
	}
	c.transport.Seek(clamp(c.transport.Position()+delta, 0, c.transport.Duration()))
}

// Restart resets the session and starts playback from the beginning.
func (c *Controller) Restart() {
	c.session.Restart()
	c.transport.Seek(0)
	c.transport.Play()
	slog.Info("session restarted")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if hi > lo && v > hi {
		return hi
	}
	return v
}
