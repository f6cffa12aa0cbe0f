package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lyritype/internal/model"
)

type fakeTransport struct {
	pos      float64
	duration float64
	paused   bool
}

func (f *fakeTransport) Position() float64 { return f.pos }
func (f *fakeTransport) Play()             { f.paused = false }
func (f *fakeTransport) Pause()            { f.paused = true }
func (f *fakeTransport) Seek(s float64)    { f.pos = s }
func (f *fakeTransport) Paused() bool      { return f.paused }
func (f *fakeTransport) Duration() float64 { return f.duration }
func (f *fakeTransport) Ended() bool       { return f.pos >= f.duration }

func TestControllerTickDrivesSession(t *testing.T) {
	tr := &fakeTransport{duration: 10, paused: true}
	c := NewController(newTestSession(nil), tr)

	res := c.Tick()
	require.Equal(t, NoChange, res.Transition)
	require.False(t, res.Ended)

	tr.pos = 1
	res = c.Tick()
	require.Equal(t, Activated, res.Transition)
	require.True(t, c.Session().Insert([]rune("hello"), false))

	tr.pos = 5
	res = c.Tick()
	require.Equal(t, Switched, res.Transition)

	tr.pos = 10
	res = c.Tick()
	require.True(t, res.Ended)
	require.True(t, tr.paused)
	require.Equal(t, 5, res.Summary.Correct)
	require.Equal(t, 11, res.Summary.Missed)
	require.InDelta(t, 31.3, res.Summary.AccuracyPercent, 1e-9)

	res = c.Tick()
	require.False(t, res.Ended, "media end is reported once")
}

func TestControllerEndWhileLineActive(t *testing.T) {
	lines := []model.TimedLine{{Text: "abc", Start: 0, End: 5}}
	tr := &fakeTransport{duration: 4}
	c := NewController(NewSession(lines, Options{Tolerance: 0.5, CollectStats: true}, nil), tr)

	tr.pos = 1
	c.Tick()
	c.Session().Insert([]rune("ab"), false)
	tr.pos = 4
	res := c.Tick()
	require.True(t, res.Ended)
	require.Len(t, res.Summary.Lines, 1)
	require.Equal(t, 2, res.Summary.Lines[0].Correct)
	require.Equal(t, 1, res.Summary.Lines[0].Missed)
}

func TestControllerSeekAndToggle(t *testing.T) {
	tr := &fakeTransport{duration: 10, paused: true}
	c := NewController(newTestSession(nil), tr)

	c.TogglePlay()
	require.False(t, tr.paused)
	c.TogglePlay()
	require.True(t, tr.paused)

	c.SeekBy(-5)
	require.Equal(t, 0.0, tr.pos)
	c.SeekBy(25)
	require.Equal(t, 10.0, tr.pos)
}

func TestControllerRestart(t *testing.T) {
	tr := &fakeTransport{duration: 10}
	c := NewController(newTestSession(nil), tr)
	tr.pos = 1
	c.Tick()
	c.Session().Insert([]rune("hello"), false)
	tr.pos = 10
	require.True(t, c.Tick().Ended)

	c.Restart()
	require.Equal(t, 0.0, tr.pos)
	require.False(t, tr.paused)
	require.False(t, c.Session().Ended())
	require.Equal(t, 0, c.Session().Stats().Correct)
	require.Empty(t, c.Session().LineStats())
}
