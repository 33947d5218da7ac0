package hardware

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// IIOADC implements ADC using the Linux industrial-I/O sysfs interface.
// Raw channel values are read from <device>/in_voltageN_raw and shifted
// up to the 16-bit contract scale when the converter is narrower.
type IIOADC struct {
	device string
	bits   int
	shift  uint
}

// NewIIOADC creates a sysfs IIO ADC reader.
// device is the sysfs path, e.g. /sys/bus/iio/devices/iio:device0.
func NewIIOADC(device string, bits int) *IIOADC {
	return &IIOADC{device: device, bits: bits}
}

// Initialize checks that the IIO device exists
func (a *IIOADC) Initialize() error {
	if _, err := os.Stat(a.device); os.IsNotExist(err) {
		return fmt.Errorf("ADC device %s not available", a.device)
	}
	if a.bits < 8 || a.bits > 16 {
		return fmt.Errorf("unsupported ADC resolution %d bits", a.bits)
	}
	a.shift = uint(16 - a.bits)

	log.Printf("IIOADC: initialized (%s, %d-bit)", a.device, a.bits)
	return nil
}

// Close releases the ADC (sysfs needs no teardown)
func (a *IIOADC) Close() error {
	log.Printf("IIOADC: closed")
	return nil
}

// Read samples one channel and returns the 16-bit scaled value
func (a *IIOADC) Read(channel int) (uint16, error) {
	rawPath := fmt.Sprintf("%s/in_voltage%d_raw", a.device, channel)
	data, err := os.ReadFile(rawPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read ADC channel %d: %w", channel, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("bad ADC reading on channel %d: %w", channel, err)
	}
	if value < 0 {
		value = 0
	}

	scaled := value << a.shift
	if scaled > ADCMax {
		scaled = ADCMax
	}
	return uint16(scaled), nil
}
