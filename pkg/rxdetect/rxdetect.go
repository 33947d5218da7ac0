// Package rxdetect implements the On-Demand trigger protocol: a
// debounced multi-sample confirmation of incoming carrier on the
// receive-level input.
package rxdetect

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/hardware"
)

const (
	// Confirmation window sampling: at least 4 of 5 evenly spaced
	// samples must exceed the threshold
	confirmSamples = 5
	confirmNeeded  = 4

	// Settle delay after the carrier drops, before control returns
	settleDelay = 1 * time.Second

	// Idle and release polling cadence
	pollInterval = 100 * time.Millisecond
)

// Detector watches a receive-level source for a valid transmit request
type Detector struct {
	level      hardware.LevelSource
	thresholdV float64
	window     time.Duration

	sleep func(time.Duration)
}

// New creates a detector. thresholdV is rx_detect_min_v; window is
// rx_detect_min_t, the span the five confirmation samples cover.
func New(level hardware.LevelSource, thresholdV float64, window time.Duration) *Detector {
	return &Detector{
		level:      level,
		thresholdV: thresholdV,
		window:     window,
		sleep:      time.Sleep,
	}
}

// WaitForRequest blocks until a confirmed request: carrier above
// threshold for most of the confirmation window, then released, then a
// settle delay. Transient spikes that fail confirmation return the
// detector to idle polling without surfacing anything. The context is
// only consulted between protocol phases; waits inside a phase run to
// completion.
func (d *Detector) WaitForRequest(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		v, err := d.level.Level()
		if err != nil {
			return fmt.Errorf("failed to poll receive level: %w", err)
		}
		if v <= d.thresholdV {
			d.sleep(pollInterval)
			continue
		}

		confirmed, err := d.confirm()
		if err != nil {
			return err
		}
		if !confirmed {
			// Noise spike, back to idle
			continue
		}

		if err := d.awaitRelease(); err != nil {
			return err
		}
		d.sleep(settleDelay)
		log.Printf("RxDetect: request confirmed")
		return nil
	}
}

// confirm takes 5 samples spaced window/5 apart and counts how many
// exceed the threshold
func (d *Detector) confirm() (bool, error) {
	spacing := d.window / confirmSamples

	over := 0
	for i := 0; i < confirmSamples; i++ {
		d.sleep(spacing)
		v, err := d.level.Level()
		if err != nil {
			return false, fmt.Errorf("failed to sample receive level: %w", err)
		}
		if v > d.thresholdV {
			over++
		}
	}

	if over < confirmNeeded {
		log.Printf("RxDetect: rejected, %d of %d samples over threshold", over, confirmSamples)
		return false, nil
	}
	return true, nil
}

// awaitRelease polls until the carrier drops back below threshold
func (d *Detector) awaitRelease() error {
	for {
		v, err := d.level.Level()
		if err != nil {
			return fmt.Errorf("failed to poll for release: %w", err)
		}
		if v < d.thresholdV {
			return nil
		}
		d.sleep(pollInterval)
	}
}
