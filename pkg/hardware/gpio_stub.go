//go:build !linux

package hardware

import "errors"

// PinConfig describes the GPIO lines used by the beacon
type PinConfig struct {
	Chip      string
	PTTPin    int
	HourPin   int
	MinutePin int
	RunPin    int
}

// LinePins is not available on non-Linux platforms
type LinePins struct{}

// NewLinePins returns a stub on non-Linux platforms
func NewLinePins(config PinConfig) *LinePins { return &LinePins{} }

var errNoGPIO = errors.New("gpio: not supported on this platform (requires Linux)")

func (p *LinePins) Initialize() error            { return errNoGPIO }
func (p *LinePins) Close() error                 { return nil }
func (p *LinePins) SetPTT(active bool) error     { return errNoGPIO }
func (p *LinePins) HourPressed() (bool, error)   { return false, errNoGPIO }
func (p *LinePins) MinutePressed() (bool, error) { return false, errNoGPIO }
func (p *LinePins) RunPressed() (bool, error)    { return false, errNoGPIO }
