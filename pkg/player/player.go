// Package player keys the transmitter and renders message sequences.
package player

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/hardware"
)

// Player drives PTT and the audio renderer. PTT stays asserted for the
// whole sequence of one Talk call.
type Player struct {
	pins      hardware.Pins
	audio     hardware.Audio
	phraseDir string
	extension string
	txDelay   time.Duration

	sleep func(time.Duration)
}

// New creates a message player. txDelay is the settle time between
// keying the transmitter and the first audio.
func New(pins hardware.Pins, audio hardware.Audio, phraseDir, extension string, txDelay time.Duration) *Player {
	return &Player{
		pins:      pins,
		audio:     audio,
		phraseDir: phraseDir,
		extension: extension,
		txDelay:   txDelay,
		sleep:     time.Sleep,
	}
}

// Talk asserts PTT, plays each message in order to completion, and
// releases PTT after the full sequence. Identifiers from the phrase
// folder get the configured extension appended; message files carry
// their own.
func (p *Player) Talk(messages []string, folder string) error {
	if err := p.pins.SetPTT(true); err != nil {
		return fmt.Errorf("failed to key transmitter: %w", err)
	}
	if p.txDelay > 0 {
		p.sleep(p.txDelay)
	}

	var playErr error
	for _, id := range messages {
		path := filepath.Join(folder, id)
		if folder == p.phraseDir {
			path += p.extension
		}
		log.Printf("Player: playing %s", path)
		if err := p.audio.PlayFile(path); err != nil {
			playErr = err
			break
		}
	}

	if err := p.pins.SetPTT(false); err != nil {
		if playErr == nil {
			playErr = fmt.Errorf("failed to unkey transmitter: %w", err)
		}
	}
	return playErr
}

// Say plays canned phrases from the phrase folder
func (p *Player) Say(phrases ...string) error {
	return p.Talk(phrases, p.phraseDir)
}

// AnnounceTime speaks a 24-hour time as hour, minute and AM/PM
func (p *Player) AnnounceTime(hour24, minute int) error {
	return p.Say(TimePhrases(hour24, minute)...)
}

// AnnounceBattery speaks a battery voltage to one decimal place.
// A voltage outside the vocabulary range is an error; the caller
// treats it as fatal.
func (p *Player) AnnounceBattery(volts float64) error {
	phrases, err := BatteryPhrases(volts)
	if err != nil {
		return err
	}
	return p.Say(phrases...)
}
