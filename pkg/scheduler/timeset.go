package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/player"
)

const (
	buttonPoll  = 100 * time.Millisecond
	runDebounce = 1 * time.Second

	hourStep   = 3600 * time.Second
	minuteStep = 300 * time.Second
)

// SetTime runs the pre-run interactive loop. The hour button adds an
// hour to the working time, the minute button five minutes, each
// announced; the run button starts the beacon. Holding run through the
// 1-second debounce selects On-Demand mode, releasing it selects
// Scheduled. Announcements are synchronous, so a press is consumed
// once per announcement.
//
// When the operator confirms, the clock's correction offset is fixed
// for the rest of the process.
func (b *Beacon) SetTime(ctx context.Context) error {
	now := b.clk.Now()
	pu := b.cfg.PowerUpMinutes()
	working := time.Date(now.Year(), now.Month(), now.Day(),
		pu/60, pu%60, 0, 0, now.Location())

	log.Printf("Scheduler: time set, working time %02d:%02d", working.Hour(), working.Minute())
	if err := b.ply.Say(player.PhraseStartup); err != nil {
		return err
	}
	if err := b.ply.AnnounceTime(working.Hour(), working.Minute()); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		pressed, err := b.pins.HourPressed()
		if err != nil {
			return err
		}
		if pressed {
			working = working.Add(hourStep)
			if err := b.ply.AnnounceTime(working.Hour(), working.Minute()); err != nil {
				return err
			}
			continue
		}

		pressed, err = b.pins.MinutePressed()
		if err != nil {
			return err
		}
		if pressed {
			working = working.Add(minuteStep)
			if err := b.ply.AnnounceTime(working.Hour(), working.Minute()); err != nil {
				return err
			}
			continue
		}

		pressed, err = b.pins.RunPressed()
		if err != nil {
			return err
		}
		if pressed {
			b.sleep(runDebounce)
			held, err := b.pins.RunPressed()
			if err != nil {
				return err
			}
			// A press that still reads down at the debounce deadline
			// counts as held
			if held {
				b.mode = ModeOnDemand
			} else {
				b.mode = ModeScheduled
			}

			b.clk.SetFromWall(working)
			log.Printf("Scheduler: time set to %02d:%02d, mode %s",
				working.Hour(), working.Minute(), b.mode)
			return nil
		}

		b.sleep(buttonPoll)
	}
}
