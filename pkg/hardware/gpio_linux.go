//go:build linux

package hardware

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
)

// PinConfig describes the GPIO lines used by the beacon
type PinConfig struct {
	Chip      string // e.g. "gpiochip0"
	PTTPin    int
	HourPin   int
	MinutePin int
	RunPin    int
}

// LinePins implements Pins on the Linux GPIO character device
type LinePins struct {
	config PinConfig

	chip   *gpiocdev.Chip
	ptt    *gpiocdev.Line
	hour   *gpiocdev.Line
	minute *gpiocdev.Line
	run    *gpiocdev.Line

	pttActive bool
}

// NewLinePins creates the real GPIO pin set
func NewLinePins(config PinConfig) *LinePins {
	return &LinePins{config: config}
}

// Initialize requests all lines from the GPIO character device.
// Buttons are requested active-low with pull-up so Value()==1 means
// pressed; PTT is an output driven inactive.
func (p *LinePins) Initialize() error {
	chip, err := gpiocdev.NewChip(p.config.Chip)
	if err != nil {
		return fmt.Errorf("failed to open GPIO chip %s: %w", p.config.Chip, err)
	}
	p.chip = chip

	p.ptt, err = chip.RequestLine(p.config.PTTPin, gpiocdev.AsOutput(0))
	if err != nil {
		p.Close()
		return fmt.Errorf("failed to request PTT pin %d: %w", p.config.PTTPin, err)
	}

	buttons := []struct {
		pin  int
		name string
		dst  **gpiocdev.Line
	}{
		{p.config.HourPin, "hour", &p.hour},
		{p.config.MinutePin, "minute", &p.minute},
		{p.config.RunPin, "run", &p.run},
	}
	for _, b := range buttons {
		line, err := chip.RequestLine(b.pin,
			gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
		if err != nil {
			p.Close()
			return fmt.Errorf("failed to request %s button pin %d: %w", b.name, b.pin, err)
		}
		*b.dst = line
	}

	log.Printf("LinePins: initialized on %s (PTT %d, buttons %d/%d/%d)",
		p.config.Chip, p.config.PTTPin, p.config.HourPin, p.config.MinutePin, p.config.RunPin)
	return nil
}

// Close drops PTT and releases all lines
func (p *LinePins) Close() error {
	if p.ptt != nil {
		if p.pttActive {
			p.ptt.SetValue(0)
		}
		p.ptt.Close()
		p.ptt = nil
	}
	for _, line := range []*gpiocdev.Line{p.hour, p.minute, p.run} {
		if line != nil {
			line.Close()
		}
	}
	p.hour, p.minute, p.run = nil, nil, nil
	if p.chip != nil {
		p.chip.Close()
		p.chip = nil
	}
	log.Printf("LinePins: closed")
	return nil
}

// SetPTT keys or unkeys the transmitter
func (p *LinePins) SetPTT(active bool) error {
	if p.ptt == nil {
		return fmt.Errorf("PTT line not initialized")
	}
	value := 0
	if active {
		value = 1
	}
	if err := p.ptt.SetValue(value); err != nil {
		return fmt.Errorf("failed to set PTT pin %d: %w", p.config.PTTPin, err)
	}
	if p.pttActive != active {
		p.pttActive = active
		log.Printf("LinePins: PTT %s (pin %d)",
			map[bool]string{true: "ON", false: "OFF"}[active], p.config.PTTPin)
	}
	return nil
}

// HourPressed reports whether the hour button is held down
func (p *LinePins) HourPressed() (bool, error) { return p.pressed(p.hour, "hour") }

// MinutePressed reports whether the minute button is held down
func (p *LinePins) MinutePressed() (bool, error) { return p.pressed(p.minute, "minute") }

// RunPressed reports whether the run button is held down
func (p *LinePins) RunPressed() (bool, error) { return p.pressed(p.run, "run") }

func (p *LinePins) pressed(line *gpiocdev.Line, name string) (bool, error) {
	if line == nil {
		return false, fmt.Errorf("%s button line not initialized", name)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("failed to read %s button: %w", name, err)
	}
	// Active-low line: the driver already inverts, 1 means pressed
	return v == 1, nil
}
