package hardware

// ADC reads raw converter counts from a multiplexed analog input
type ADC interface {
	Initialize() error
	Close() error

	// Read returns the raw sample for a channel, scaled to the full
	// 16-bit range regardless of converter resolution.
	Read(channel int) (uint16, error)
}

// Pins is the digital pin set: the PTT output plus the three operator
// buttons. Buttons are active-low with internal pull-ups; a pressed
// button reads true.
type Pins interface {
	Initialize() error
	Close() error

	SetPTT(active bool) error
	HourPressed() (bool, error)
	MinutePressed() (bool, error)
	RunPressed() (bool, error)
}

// Audio renders one audio file to the transmitter input, blocking until
// playback completes.
type Audio interface {
	PlayFile(path string) error
}

// LevelSource reports instantaneous receive-signal strength in volts
// on the ADC scale, whatever the underlying measurement.
type LevelSource interface {
	Level() (float64, error)
}

// ADC sample scale: 16-bit counts spanning 0-3.3V
const (
	ADCMax            = 65535
	ADCFullScaleVolts = 3.3
)

// VoltsFromRaw converts a raw ADC sample to pin volts
func VoltsFromRaw(raw uint16) float64 {
	return float64(raw) * ADCFullScaleVolts / ADCMax
}
