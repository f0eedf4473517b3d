package game

import "time"

// Clock is the session stopwatch. It starts on the first selection, can be paused
// and is frozen when the game ends.
type Clock struct {
	startedAt   time.Time
	started     bool
	pausedAt    time.Time
	paused      bool
	pausedTotal time.Duration
	frozen      bool
	final       time.Duration
}

// Start begins timing. Starting twice is a no-op.
func (c *Clock) Start(now time.Time) {
	if c.started {
		return
	}
	c.startedAt = now
	c.started = true
}

// Started reports whether the clock has started.
func (c *Clock) Started() bool {
	return c.started
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Pause stops the clock from advancing.
func (c *Clock) Pause(now time.Time) {
	if !c.started || c.paused || c.frozen {
		return
	}
	c.pausedAt = now
	c.paused = true
}

// Resume continues after Pause.
func (c *Clock) Resume(now time.Time) {
	if !c.paused || c.frozen {
		return
	}
	if now.After(c.pausedAt) {
		c.pausedTotal += now.Sub(c.pausedAt)
	}
	c.paused = false
}

// Freeze fixes the elapsed time for good.
func (c *Clock) Freeze(now time.Time) {
	if c.frozen {
		return
	}
	c.final = c.Elapsed(now)
	c.frozen = true
}

// Elapsed returns running time excluding paused spans.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	switch {
	case c.frozen:
		return c.final
	case !c.started:
		return 0
	case c.paused:
		now = c.pausedAt
	}
	d := now.Sub(c.startedAt) - c.pausedTotal
	if d < 0 {
		return 0
	}
	return d
}
