package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtualClockOffset(t *testing.T) {
	base := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)
	now := base
	clk := NewWithSource(func() time.Time { return now })

	// Before any correction the clock tracks the source
	assert.Equal(t, base, clk.Now())

	// Operator confirms 14:05 while the source reads 09:30
	want := time.Date(2025, 6, 14, 14, 5, 0, 0, time.UTC)
	clk.SetFromWall(want)
	assert.Equal(t, want, clk.Now())
	assert.Equal(t, 4*time.Hour+35*time.Minute, clk.Offset())

	// The offset stays fixed as the source advances
	now = now.Add(90 * time.Second)
	assert.Equal(t, want.Add(90*time.Second), clk.Now())
}

func TestMinuteOfDayAgreesWithParts(t *testing.T) {
	// The two entry points must agree for every valid hour/minute pair
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			instant := time.Date(2025, 3, 9, hour, minute, 17, 0, time.UTC)
			if got, want := MinuteOfDay(instant), MinutesFromParts(hour, minute); got != want {
				t.Fatalf("%02d:%02d: MinuteOfDay=%d MinutesFromParts=%d", hour, minute, got, want)
			}
		}
	}
}

func TestMinutesFromPartsWraps(t *testing.T) {
	assert.Equal(t, 0, MinutesFromParts(24, 0))
	assert.Equal(t, 5, MinutesFromParts(24, 5))
	assert.Equal(t, 1439, MinutesFromParts(23, 59))
	assert.Equal(t, 120, MinutesFromParts(26, 0))
}

func TestSecondOfMinute(t *testing.T) {
	aligned := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, SecondOfMinute(aligned))
	assert.Equal(t, 59, SecondOfMinute(aligned.Add(59*time.Second)))
}
