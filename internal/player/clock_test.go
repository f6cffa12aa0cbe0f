package player

import (
	"math"
	"testing"
	"time"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestClock(duration float64) (*Clock, *fakeNow) {
	fn := &fakeNow{t: time.Unix(1000, 0)}
	return NewClock(duration, WithNow(fn.now)), fn
}

func TestClockStartsPaused(t *testing.T) {
	c, fn := newTestClock(30)
	fn.advance(5 * time.Second)
	if !c.Paused() || c.Position() != 0 {
		t.Fatalf("expected paused clock at 0, got %v paused=%v", c.Position(), c.Paused())
	}
}

func TestClockPlayPause(t *testing.T) {
	c, fn := newTestClock(30)
	c.Play()
	fn.advance(2500 * time.Millisecond)
	if got := c.Position(); math.Abs(got-2.5) > 1e-9 {
		t.Fatalf("expected 2.5, got %v", got)
	}
	c.Pause()
	fn.advance(10 * time.Second)
	if got := c.Position(); math.Abs(got-2.5) > 1e-9 {
		t.Fatalf("expected paused at 2.5, got %v", got)
	}
	c.Play()
	fn.advance(time.Second)
	if got := c.Position(); math.Abs(got-3.5) > 1e-9 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestClockSeekClamps(t *testing.T) {
	c, _ := newTestClock(30)
	c.Seek(-4)
	if c.Position() != 0 {
		t.Fatalf("expected 0, got %v", c.Position())
	}
	c.Seek(45)
	if c.Position() != 30 || !c.Ended() {
		t.Fatalf("expected clamped end, got %v ended=%v", c.Position(), c.Ended())
	}
	c.Seek(math.NaN())
	if c.Position() != 0 {
		t.Fatalf("expected NaN seek to reset to 0, got %v", c.Position())
	}
}

func TestClockEndsAndReplays(t *testing.T) {
	c, fn := newTestClock(3)
	c.Play()
	fn.advance(4 * time.Second)
	if !c.Ended() || c.Position() != 3 {
		t.Fatalf("expected ended at 3, got %v", c.Position())
	}
	c.Pause()
	c.Play()
	if c.Position() != 0 {
		t.Fatalf("expected replay from 0, got %v", c.Position())
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[float64]string{
		0:    "0:00",
		9.9:  "0:09",
		61:   "1:01",
		600:  "10:00",
		-3:   "0:00",
		3725: "62:05",
	}
	for in, want := range cases {
		if got := FormatTime(in); got != want {
			t.Fatalf("FormatTime(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatTime(math.Inf(1)); got != "--:--" {
		t.Fatalf("expected --:-- for +Inf, got %q", got)
	}
	if got := FormatTime(math.NaN()); got != "0:00" {
		t.Fatalf("expected 0:00 for NaN, got %q", got)
	}
}
