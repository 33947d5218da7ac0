package hardware

import (
	"testing"
)

func TestVoltsFromRaw(t *testing.T) {
	tests := []struct {
		raw  uint16
		want float64
	}{
		{0, 0.0},
		{65535, 3.3},
		{32767, 1.6499},
	}
	for _, tt := range tests {
		got := VoltsFromRaw(tt.raw)
		if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
			t.Errorf("VoltsFromRaw(%d) = %f, want %f", tt.raw, got, tt.want)
		}
	}
}

func TestMockADCScriptedSamples(t *testing.T) {
	adc := NewMockADC(map[int][]uint16{
		0: {100, 200, 300},
		3: {4000},
	})
	if err := adc.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	for i, want := range []uint16{100, 200, 300, 300, 300} {
		got, err := adc.Read(0)
		if err != nil {
			t.Fatalf("Read %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Read %d = %d, want %d", i, got, want)
		}
	}

	// Channels script independently
	got, err := adc.Read(3)
	if err != nil {
		t.Fatalf("Read channel 3 failed: %v", err)
	}
	if got != 4000 {
		t.Errorf("Read channel 3 = %d, want 4000", got)
	}

	if _, err := adc.Read(7); err == nil {
		t.Error("Expected error for unscripted channel")
	}
}

func TestMockPinsPTTLog(t *testing.T) {
	pins := NewMockPins()

	pins.SetPTT(true)
	pins.SetPTT(false)
	pins.SetPTT(true)

	want := []bool{true, false, true}
	if len(pins.PTTLog) != len(want) {
		t.Fatalf("PTTLog has %d entries, want %d", len(pins.PTTLog), len(want))
	}
	for i := range want {
		if pins.PTTLog[i] != want[i] {
			t.Errorf("PTTLog[%d] = %t, want %t", i, pins.PTTLog[i], want[i])
		}
	}
	if !pins.PTT() {
		t.Error("PTT should be active")
	}
}

func TestMockPinsButtonScripts(t *testing.T) {
	pins := NewMockPins()
	pins.RunStates = []bool{true, false}

	pressed, err := pins.RunPressed()
	if err != nil || !pressed {
		t.Errorf("First poll: pressed=%t err=%v, want true", pressed, err)
	}
	for i := 0; i < 3; i++ {
		pressed, err = pins.RunPressed()
		if err != nil || pressed {
			t.Errorf("Poll %d: pressed=%t err=%v, want false", i+2, pressed, err)
		}
	}
}

func TestMockLevelRepeatsLast(t *testing.T) {
	level := NewMockLevel(0.5, 0.1)
	for i, want := range []float64{0.5, 0.1, 0.1} {
		got, err := level.Level()
		if err != nil {
			t.Fatalf("Level %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Level %d = %f, want %f", i, got, want)
		}
	}
}
