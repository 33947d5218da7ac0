// Package scheduler is the beacon control loop: it tracks virtual time
// against the operator-set reference, gates transmission on the active
// window and battery, sequences the playlist with minute-aligned
// starts, and arbitrates the two operating modes.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/battery"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/clock"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/config"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/hardware"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/player"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/rxdetect"
)

// Mode is the operating mode, fixed at startup by the run-button hold
type Mode int

const (
	ModeScheduled Mode = iota
	ModeOnDemand
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeScheduled:
		return "scheduled"
	case ModeOnDemand:
		return "on-demand"
	default:
		return "unknown"
	}
}

// Polling cadences for the blocking waits
const (
	barrierPoll  = 50 * time.Millisecond
	intervalPoll = 100 * time.Millisecond
	idlePoll     = 1 * time.Second
)

// Beacon owns all mutable run state: clock offset, mode, window,
// cursor and activity. It is driven by a single goroutine; nothing
// here is shared.
type Beacon struct {
	cfg  *config.Config
	clk  *clock.VirtualClock
	bat  *battery.Monitor
	det  *rxdetect.Detector
	ply  *player.Player
	pins hardware.Pins

	messages []string

	mode      Mode
	cursor    int
	active    bool
	startMins int
	stopMins  int
	windowSet bool

	sleep func(time.Duration)
}

// New creates a beacon over its collaborators. messages is the playlist
// loaded once at startup.
func New(cfg *config.Config, clk *clock.VirtualClock, bat *battery.Monitor,
	det *rxdetect.Detector, ply *player.Player, pins hardware.Pins,
	messages []string) *Beacon {
	return &Beacon{
		cfg:      cfg,
		clk:      clk,
		bat:      bat,
		det:      det,
		ply:      ply,
		pins:     pins,
		messages: messages,
		sleep:    time.Sleep,
	}
}

// Mode returns the operating mode chosen at startup
func (b *Beacon) Mode() Mode { return b.mode }

// Run executes the beacon: the time-set loop, then the control loop
// until the context is cancelled or a hardware fault surfaces.
// Cancellation is only observed between cycles; blocking waits inside
// a cycle run to completion.
func (b *Beacon) Run(ctx context.Context) error {
	if err := b.SetTime(ctx); err != nil {
		return err
	}

	if b.mode == ModeScheduled {
		b.startMins = b.cfg.StartMinutes()
		b.stopMins = b.cfg.StopMinutes()
		b.windowSet = true
	}
	log.Printf("Scheduler: running, mode %s, %d messages", b.mode, len(b.messages))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.cycle(ctx); err != nil {
			return err
		}
	}
}

// cycle runs one iteration of the control loop
func (b *Beacon) cycle(ctx context.Context) error {
	if b.mode == ModeOnDemand && !b.windowSet {
		if err := b.det.WaitForRequest(ctx); err != nil {
			return err
		}
		if err := b.startSession(); err != nil {
			return err
		}
	}

	now := b.clk.Now()
	mins := clock.MinuteOfDay(now)
	inWindow := mins >= b.startMins && mins <= b.stopMins

	batOK, err := b.bat.AboveThreshold(b.cfg.Battery.MinVoltage)
	if err != nil {
		return err
	}

	if inWindow && batOK {
		if !b.active {
			b.active = true
			b.cursor = 0
			log.Printf("Scheduler: active at %02d:%02d", now.Hour(), now.Minute())
		}
		return b.emit()
	}

	if b.active {
		b.active = false
		log.Printf("Scheduler: inactive (in window %t, battery ok %t)", inWindow, batOK)
	}

	if b.mode == ModeOnDemand {
		// Session over; the next cycle waits for a fresh trigger and
		// computes a new window
		b.windowSet = false
		return nil
	}

	b.sleep(idlePoll)
	return nil
}

// emit plays the next slot: the playlist entry under the cursor, or
// the battery announcement when the cursor has run off the end
func (b *Beacon) emit() error {
	b.waitMinuteTop()
	slotStart := b.clk.Now()

	if b.cursor == len(b.messages) {
		volts, err := b.bat.Measure()
		if err != nil {
			return err
		}
		log.Printf("Scheduler: announcing battery %.1f V", volts)
		if err := b.ply.AnnounceBattery(volts); err != nil {
			return err
		}
		b.cursor = 0
	} else {
		if err := b.ply.Talk([]string{b.messages[b.cursor]}, b.cfg.Audio.MessageDir); err != nil {
			return err
		}
		b.cursor++
	}

	b.waitInterval(slotStart)
	return nil
}

// startSession computes a fresh On-Demand window from the trigger
// instant and announces it. Windows are never carried over between
// sessions.
func (b *Beacon) startSession() error {
	now := b.clk.Now()
	stop := now.Add(time.Duration(b.cfg.Schedule.OnDemandRunM) * time.Minute)

	b.startMins = clock.MinuteOfDay(now)
	b.stopMins = clock.MinuteOfDay(stop)
	b.windowSet = true
	b.active = false
	log.Printf("Scheduler: on-demand session %02d:%02d to %02d:%02d",
		now.Hour(), now.Minute(), stop.Hour(), stop.Minute())

	phrases := []string{player.PhraseOnDemandIntro, player.PhraseUntil}
	phrases = append(phrases, player.TimePhrases(stop.Hour(), stop.Minute())...)
	return b.ply.Say(phrases...)
}

// waitMinuteTop blocks until the virtual clock reads second zero so
// every emission starts on a whole-minute boundary. No timeout.
func (b *Beacon) waitMinuteTop() {
	for clock.SecondOfMinute(b.clk.Now()) != 0 {
		b.sleep(barrierPoll)
	}
}

// waitInterval blocks until the message interval has elapsed since the
// aligned slot start, keeping slot starts a fixed cadence apart no
// matter how long playback took. No timeout.
func (b *Beacon) waitInterval(slotStart time.Time) {
	interval := time.Duration(b.cfg.Schedule.MessageIntervalS) * time.Second
	for b.clk.Now().Sub(slotStart) < interval {
		b.sleep(intervalPoll)
	}
}
