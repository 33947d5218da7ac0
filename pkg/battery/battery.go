// Package battery samples the supply voltage through a divider on an
// ADC channel.
package battery

import (
	"fmt"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/hardware"
)

// measureSamples is the number of consecutive readings averaged by Measure
const measureSamples = 10

// Monitor reads battery voltage from an ADC channel
type Monitor struct {
	adc     hardware.ADC
	channel int
	factor  float64
}

// New creates a battery monitor. factor is the calibration multiplier
// from ADC pin volts to battery volts (the divider ratio).
func New(adc hardware.ADC, channel int, factor float64) *Monitor {
	return &Monitor{adc: adc, channel: channel, factor: factor}
}

func (m *Monitor) sample() (float64, error) {
	raw, err := m.adc.Read(m.channel)
	if err != nil {
		return 0, fmt.Errorf("failed to sample battery: %w", err)
	}
	return hardware.VoltsFromRaw(raw) * m.factor, nil
}

// Measure takes 10 consecutive samples with no inter-sample delay and
// returns the arithmetic mean in battery volts. Used for announcements.
func (m *Monitor) Measure() (float64, error) {
	var sum float64
	for i := 0; i < measureSamples; i++ {
		v, err := m.sample()
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / measureSamples, nil
}

// AboveThreshold gates the activity predicate on a single instantaneous
// sample. The averaged reading is deliberately not used here so the
// control loop stays responsive.
func (m *Monitor) AboveThreshold(minVoltage float64) (bool, error) {
	v, err := m.sample()
	if err != nil {
		return false, err
	}
	return v >= minVoltage, nil
}
