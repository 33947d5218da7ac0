package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/battery"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/clock"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/config"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/hardware"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/logging"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/player"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/playlist"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/rxdetect"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/scheduler"
)

// audioFrameSize is the FFT frame length for the audio level source
const audioFrameSize = 1024

// FoxDaemon wires the hardware and the beacon together
type FoxDaemon struct {
	config *config.Config

	pins   hardware.Pins
	adc    hardware.ADC
	frames hardware.FrameSource

	beacon *scheduler.Beacon
}

// NewFoxDaemon creates a daemon instance. With enable_gpio false all
// hardware is mocked and the beacon dry-runs in Scheduled mode.
func NewFoxDaemon(cfg *config.Config) (*FoxDaemon, error) {
	d := &FoxDaemon{config: cfg}

	var audio hardware.Audio
	if cfg.Hardware.EnableGPIO {
		pins := hardware.NewLinePins(hardware.PinConfig{
			Chip:      cfg.Hardware.GPIOChip,
			PTTPin:    cfg.Hardware.PTTPin,
			HourPin:   cfg.Hardware.HourButtonPin,
			MinutePin: cfg.Hardware.MinuteButtonPin,
			RunPin:    cfg.Hardware.RunButtonPin,
		})
		if err := pins.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize GPIO: %w", err)
		}
		d.pins = pins

		adc := hardware.NewIIOADC(cfg.Hardware.ADCDevice, cfg.Hardware.ADCBits)
		if err := adc.Initialize(); err != nil {
			pins.Close()
			return nil, fmt.Errorf("failed to initialize ADC: %w", err)
		}
		d.adc = adc

		audio = hardware.NewExecAudio(cfg.Audio.PlayCommand)
	} else {
		// Dry run: run button confirms immediately, battery reads
		// healthy, no carrier on the receive channel
		pins := hardware.NewMockPins()
		pins.RunStates = []bool{true, false}
		d.pins = pins

		batteryRaw := uint16(12.6 / cfg.Battery.CorrectionFactor /
			hardware.ADCFullScaleVolts * hardware.ADCMax)
		d.adc = hardware.NewMockADC(map[int][]uint16{
			cfg.Hardware.BatteryChannel: {batteryRaw},
			cfg.Hardware.RxLevelChannel: {0},
		})

		audio = hardware.NewMockAudio()
	}

	var level hardware.LevelSource
	if cfg.Detect.Source == "audio" {
		d.frames = hardware.NewExecFrameSource(cfg.Audio.RecCommand, audioFrameSize)
		level = hardware.NewAudioLevel(d.frames, cfg.Audio.SampleRate, audioFrameSize)
	} else {
		level = hardware.NewADCLevel(d.adc, cfg.Hardware.RxLevelChannel)
	}

	messages, err := playlist.Load(cfg.Audio.MessageDir)
	if err != nil {
		if cfg.Hardware.EnableGPIO {
			d.Close()
			return nil, err
		}
		logging.Warnf("daemon", "no message directory, dry run with empty playlist: %v", err)
		messages = nil
	}
	logging.Infof("daemon", "loaded %d messages from %s", len(messages), cfg.Audio.MessageDir)

	clk := clock.New()
	bat := battery.New(d.adc, cfg.Hardware.BatteryChannel, cfg.Battery.CorrectionFactor)
	det := rxdetect.New(level, cfg.Detect.RxDetectMinV,
		time.Duration(cfg.Detect.RxDetectMinT*float64(time.Second)))
	ply := player.New(d.pins, audio, cfg.Audio.PhraseDir, cfg.Audio.Extension,
		time.Duration(cfg.Audio.TxDelay*float64(time.Second)))

	d.beacon = scheduler.New(cfg, clk, bat, det, ply, d.pins, messages)
	return d, nil
}

// Run executes the beacon until the context is cancelled or a fault
// surfaces
func (d *FoxDaemon) Run(ctx context.Context) error {
	return d.beacon.Run(ctx)
}

// Close releases all hardware
func (d *FoxDaemon) Close() {
	if d.frames != nil {
		d.frames.Close()
	}
	if d.adc != nil {
		d.adc.Close()
	}
	if d.pins != nil {
		d.pins.Close()
	}
}
