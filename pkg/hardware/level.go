package hardware

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ADCLevel implements LevelSource from a scaled ADC channel, the usual
// arrangement when the receiver exposes an RSSI voltage.
type ADCLevel struct {
	adc     ADC
	channel int
}

// NewADCLevel creates a receive-level source on an ADC channel
func NewADCLevel(adc ADC, channel int) *ADCLevel {
	return &ADCLevel{adc: adc, channel: channel}
}

// Level returns the instantaneous receive level in volts
func (l *ADCLevel) Level() (float64, error) {
	raw, err := l.adc.Read(l.channel)
	if err != nil {
		return 0, fmt.Errorf("failed to read receive level: %w", err)
	}
	return VoltsFromRaw(raw), nil
}

// AudioLevel implements LevelSource from receiver audio when no RSSI
// pin is wired. Each call captures one frame, applies a Hann window,
// and sums FFT magnitudes across the voice band; the band RMS is
// mapped onto the same 0-3.3V scale as the ADC source so detection
// thresholds work unchanged.
type AudioLevel struct {
	source     FrameSource
	sampleRate int
	frameSize  int
	window     []float64
	bandLow    float64 // Hz
	bandHigh   float64 // Hz
}

// NewAudioLevel creates an audio-derived receive-level source.
// frameSize must be a power of two.
func NewAudioLevel(source FrameSource, sampleRate, frameSize int) *AudioLevel {
	return &AudioLevel{
		source:     source,
		sampleRate: sampleRate,
		frameSize:  frameSize,
		window:     makeHannWindow(frameSize),
		bandLow:    300,
		bandHigh:   2700,
	}
}

// makeHannWindow creates a Hann window for FFT framing
func makeHannWindow(size int) []float64 {
	window := make([]float64, size)
	for i := 0; i < size; i++ {
		window[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(size-1)))
	}
	return window
}

// Level captures one audio frame and returns band power in ADC volts
func (l *AudioLevel) Level() (float64, error) {
	samples, err := l.source.Frames()
	if err != nil {
		return 0, fmt.Errorf("failed to capture audio frame: %w", err)
	}
	if len(samples) < l.frameSize {
		return 0, fmt.Errorf("short audio frame: %d of %d samples", len(samples), l.frameSize)
	}

	buf := make([]complex128, l.frameSize)
	for i := 0; i < l.frameSize; i++ {
		buf[i] = complex(float64(samples[i])/32768.0*l.window[i], 0)
	}

	spectrum := fft.FFT(buf)

	freqStep := float64(l.sampleRate) / float64(l.frameSize)
	lowBin := int(l.bandLow / freqStep)
	highBin := int(l.bandHigh / freqStep)
	if highBin > l.frameSize/2 {
		highBin = l.frameSize / 2
	}

	var power float64
	for bin := lowBin; bin <= highBin; bin++ {
		mag := cmplx.Abs(spectrum[bin]) / float64(l.frameSize)
		power += mag * mag
	}

	rms := math.Sqrt(power)
	if rms > 1.0 {
		rms = 1.0
	}
	return rms * ADCFullScaleVolts, nil
}
