// Package clock maintains the beacon's virtual time: the host
// monotonic clock plus a correction offset the operator dials in with
// the buttons before the run starts.
package clock

import "time"

// VirtualClock derives beacon time from a time source plus a one-shot
// correction offset
type VirtualClock struct {
	offset time.Duration
	source func() time.Time
}

// New creates a virtual clock backed by the system clock
func New() *VirtualClock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a virtual clock with an injected time source
func NewWithSource(source func() time.Time) *VirtualClock {
	return &VirtualClock{source: source}
}

// Now returns the current virtual time
func (c *VirtualClock) Now() time.Time {
	return c.source().Add(c.offset)
}

// SetFromWall fixes the correction offset so that Now() reads want.
// Called exactly once, when the operator confirms the working time.
func (c *VirtualClock) SetFromWall(want time.Time) {
	c.offset = want.Sub(c.source())
}

// Offset returns the current correction offset
func (c *VirtualClock) Offset() time.Duration {
	return c.offset
}

// MinutesPerDay is the wrap point for time-of-day arithmetic
const MinutesPerDay = 24 * 60

// MinuteOfDay converts an absolute instant to minutes since midnight
// by calendar decomposition
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesFromParts converts an hour/minute pair directly to minutes
// since midnight. Agrees with MinuteOfDay for any instant decomposed
// to the same pair; values wrap at 1440.
func MinutesFromParts(hour, minute int) int {
	m := (hour*60 + minute) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// SecondOfMinute returns the seconds-within-minute of an instant,
// used by the minute-alignment barrier
func SecondOfMinute(t time.Time) int {
	return t.Second()
}
