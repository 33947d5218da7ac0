package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTimeAdjustsAndSelectsScheduled(t *testing.T) {
	cfg := testConfig()
	e := newTestEnv(cfg, nil, 12.6)

	// One hour press, one minute press, then a short run press
	// (released by the debounce re-sample)
	e.pins.HourStates = []bool{true, false}
	e.pins.MinuteStates = []bool{true, false}
	e.pins.RunStates = []bool{false, true, false}

	require.NoError(t, e.beacon.SetTime(context.Background()))

	assert.Equal(t, ModeScheduled, e.beacon.Mode())

	// Power-up 10:00 + 1h + 5m
	now := e.beacon.clk.Now()
	assert.Equal(t, 11, now.Hour())
	assert.Equal(t, 5, now.Minute())

	// Startup phrase, then announcements for 10:00, 11:00 and 11:05
	assert.Equal(t, []string{
		"/phrases/startup.wav",
		"/phrases/hour-10.wav", "/phrases/minute-00.wav", "/phrases/am.wav",
		"/phrases/hour-11.wav", "/phrases/minute-00.wav", "/phrases/am.wav",
		"/phrases/hour-11.wav", "/phrases/minute-05.wav", "/phrases/am.wav",
	}, e.audio.Played)
}

func TestSetTimeHeldRunSelectsOnDemand(t *testing.T) {
	cfg := testConfig()
	e := newTestEnv(cfg, nil, 12.6)

	// Run held down through the 1-second debounce
	e.pins.RunStates = []bool{true, true, false}

	require.NoError(t, e.beacon.SetTime(context.Background()))
	assert.Equal(t, ModeOnDemand, e.beacon.Mode())
}

func TestSetTimeDebounceSleepsOneSecond(t *testing.T) {
	cfg := testConfig()
	e := newTestEnv(cfg, nil, 12.6)
	e.pins.RunStates = []bool{true, false}

	var sleeps []time.Duration
	e.beacon.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
		e.now = e.now.Add(d)
	}

	require.NoError(t, e.beacon.SetTime(context.Background()))
	require.NotEmpty(t, sleeps)
	assert.Equal(t, runDebounce, sleeps[len(sleeps)-1])
}

func TestSetTimeFixesClockOffsetOnce(t *testing.T) {
	cfg := testConfig()
	e := newTestEnv(cfg, nil, 12.6)
	e.pins.RunStates = []bool{true, false}

	require.NoError(t, e.beacon.SetTime(context.Background()))
	offset := e.beacon.clk.Offset()

	// Virtual time keeps tracking the source with the fixed offset
	e.now = e.now.Add(10 * time.Minute)
	assert.Equal(t, offset, e.beacon.clk.Offset())
	assert.Equal(t, 10, e.beacon.clk.Now().Minute())
}

func TestSetTimeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	e := newTestEnv(cfg, nil, 12.6)

	err := e.beacon.SetTime(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
