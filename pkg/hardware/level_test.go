package hardware

import (
	"math"
	"testing"
)

// sineFrame generates a mono tone at the given frequency
func sineFrame(freqHz float64, sampleRate, size int, amplitude float64) []int16 {
	frame := make([]int16, size)
	for i := range frame {
		v := amplitude * math.Sin(2.0*math.Pi*freqHz*float64(i)/float64(sampleRate))
		frame[i] = int16(v * 32767)
	}
	return frame
}

func TestAudioLevelVoiceBandTone(t *testing.T) {
	const sampleRate, frameSize = 8000, 1024

	// A 1 kHz tone sits inside the 300-2700 Hz band
	tone := &MockFrameSource{Frame: sineFrame(1000, sampleRate, frameSize, 0.5)}
	level := NewAudioLevel(tone, sampleRate, frameSize)

	v, err := level.Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if v < 0.1 {
		t.Errorf("In-band tone level %f, want well above noise floor", v)
	}

	// Silence reads near zero
	silence := &MockFrameSource{Frame: make([]int16, frameSize)}
	level = NewAudioLevel(silence, sampleRate, frameSize)
	v, err = level.Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if v > 0.01 {
		t.Errorf("Silence level %f, want near zero", v)
	}
}

func TestAudioLevelOutOfBandToneRejected(t *testing.T) {
	const sampleRate, frameSize = 8000, 1024

	inBand := &MockFrameSource{Frame: sineFrame(1000, sampleRate, frameSize, 0.5)}
	outOfBand := &MockFrameSource{Frame: sineFrame(100, sampleRate, frameSize, 0.5)}

	inLevel, err := NewAudioLevel(inBand, sampleRate, frameSize).Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	outLevel, err := NewAudioLevel(outOfBand, sampleRate, frameSize).Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}

	if outLevel >= inLevel/2 {
		t.Errorf("Out-of-band level %f not attenuated versus in-band %f", outLevel, inLevel)
	}
}

func TestAudioLevelShortFrame(t *testing.T) {
	source := &MockFrameSource{Frame: make([]int16, 16)}
	level := NewAudioLevel(source, 8000, 1024)
	if _, err := level.Level(); err == nil {
		t.Error("Expected error for short frame")
	}
}

func TestADCLevelScalesToVolts(t *testing.T) {
	adc := NewMockADC(map[int][]uint16{1: {65535}})
	level := NewADCLevel(adc, 1)

	v, err := level.Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if v < 3.29 || v > 3.31 {
		t.Errorf("Full-scale level = %f, want 3.3", v)
	}
}
