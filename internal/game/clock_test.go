package game

import (
	"testing"
	"time"
)

func TestClockPauseAndFreeze(t *testing.T) {
	base := time.Unix(0, 0)
	var c Clock
	if c.Elapsed(base.Add(time.Hour)) != 0 {
		t.Fatalf("unstarted clock must read 0")
	}
	c.Start(base)
	c.Pause(base.Add(2 * time.Second))
	if got := c.Elapsed(base.Add(10 * time.Second)); got != 2*time.Second {
		t.Fatalf("expected 2s while paused, got %s", got)
	}
	c.Resume(base.Add(10 * time.Second))
	if got := c.Elapsed(base.Add(11 * time.Second)); got != 3*time.Second {
		t.Fatalf("expected 3s after resume, got %s", got)
	}
	c.Freeze(base.Add(12 * time.Second))
	if got := c.Elapsed(base.Add(time.Hour)); got != 4*time.Second {
		t.Fatalf("expected frozen 4s, got %s", got)
	}
}

func TestCharacterStats(t *testing.T) {
	var c CharacterStats
	if c.AvgTimeMs() != 0 || c.Accuracy() != 1 {
		t.Fatalf("unexpected zero stats %f %f", c.AvgTimeMs(), c.Accuracy())
	}
	c = CharacterStats{Attempts: 2, Incorrect: 2, TotalResponseMs: 3000}
	if c.AvgTimeMs() != 1500 || c.Accuracy() != 0.5 {
		t.Fatalf("unexpected stats %f %f", c.AvgTimeMs(), c.Accuracy())
	}
}
