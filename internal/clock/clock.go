// Package clock provides the logical time source of a timeline replay.
//
// Time is a time.Duration offset on the log's own timeline. Nothing here
// reads the system clock: the replay driver advances the clock to each
// event's timestamp before handing the event on.
package clock

import (
	"fmt"
	"time"
)

// Replay tracks the current position within a replayed fight.
type Replay struct {
	start time.Duration
	end   time.Duration
	now   time.Duration
}

// NewReplay returns a clock positioned at the fight start. A zero end means
// the fight end is not known yet and follows the latest timestamp seen.
func NewReplay(start, end time.Duration) *Replay {
	return &Replay{
		start: start,
		end:   end,
		now:   start,
	}
}

// Now returns the current logical timestamp.
func (c *Replay) Now() time.Duration {
	return c.now
}

// Advance moves the clock to ts. Timestamps before the current position are
// ignored; the timeline is expected in non-decreasing order.
func (c *Replay) Advance(ts time.Duration) {
	if ts < c.now {
		return
	}
	c.now = ts
}

// EndAt fixes the fight end at ts, replacing the end the clock was created
// with.
func (c *Replay) EndAt(ts time.Duration) {
	c.end = ts
}

// Start returns the fight start timestamp.
func (c *Replay) Start() time.Duration {
	return c.start
}

// Elapsed converts a timestamp to time since fight start.
func (c *Replay) Elapsed(ts time.Duration) time.Duration {
	return ts - c.start
}

// FightDuration returns the total fight length, or the time replayed so far
// when the end is unknown.
func (c *Replay) FightDuration() time.Duration {
	if c.end > c.start {
		return c.end - c.start
	}
	return c.now - c.start
}

// Format renders a fight-relative timestamp as m:ss.mmm.
func (c *Replay) Format(ts time.Duration) string {
	return FormatDuration(c.Elapsed(ts))
}

// FormatDuration renders d as m:ss.mmm, with a leading minus when negative.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Round(time.Millisecond)
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	return fmt.Sprintf("%s%d:%02d.%03d", sign, minutes, seconds, d/time.Millisecond)
}
