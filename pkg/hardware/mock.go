package hardware

import (
	"fmt"
	"log"
)

// MockADC implements ADC with scripted samples for testing.
// Each Read consumes the next sample for that channel; when a channel's
// samples run out the last one repeats.
type MockADC struct {
	Samples map[int][]uint16
	Err     error

	index map[int]int
}

// NewMockADC creates a mock ADC with per-channel scripted samples
func NewMockADC(samples map[int][]uint16) *MockADC {
	return &MockADC{
		Samples: samples,
		index:   make(map[int]int),
	}
}

// Initialize initializes the mock ADC
func (a *MockADC) Initialize() error {
	log.Printf("MockADC: initialized")
	return nil
}

// Close closes the mock ADC
func (a *MockADC) Close() error {
	log.Printf("MockADC: closed")
	return nil
}

// Read returns the next scripted sample for a channel
func (a *MockADC) Read(channel int) (uint16, error) {
	if a.Err != nil {
		return 0, a.Err
	}
	samples := a.Samples[channel]
	if len(samples) == 0 {
		return 0, fmt.Errorf("no samples configured for channel %d", channel)
	}
	if a.index == nil {
		a.index = make(map[int]int)
	}
	i := a.index[channel]
	if i < len(samples)-1 {
		a.index[channel] = i + 1
	}
	return samples[i], nil
}

// MockPins implements Pins with scripted button states for testing
type MockPins struct {
	// Scripted per-poll button states; the last entry repeats
	HourStates   []bool
	MinuteStates []bool
	RunStates    []bool

	Err error

	// PTTLog records every SetPTT call in order
	PTTLog []bool

	ptt       bool
	hourIdx   int
	minuteIdx int
	runIdx    int
}

// NewMockPins creates a mock pin set with all buttons released
func NewMockPins() *MockPins {
	return &MockPins{
		HourStates:   []bool{false},
		MinuteStates: []bool{false},
		RunStates:    []bool{false},
	}
}

// Initialize initializes the mock pins
func (p *MockPins) Initialize() error { return nil }

// Close closes the mock pins
func (p *MockPins) Close() error { return nil }

// SetPTT records the PTT state
func (p *MockPins) SetPTT(active bool) error {
	if p.Err != nil {
		return p.Err
	}
	p.ptt = active
	p.PTTLog = append(p.PTTLog, active)
	return nil
}

// PTT returns the current mock PTT state
func (p *MockPins) PTT() bool { return p.ptt }

// HourPressed returns the next scripted hour-button state
func (p *MockPins) HourPressed() (bool, error) {
	return p.next(p.HourStates, &p.hourIdx)
}

// MinutePressed returns the next scripted minute-button state
func (p *MockPins) MinutePressed() (bool, error) {
	return p.next(p.MinuteStates, &p.minuteIdx)
}

// RunPressed returns the next scripted run-button state
func (p *MockPins) RunPressed() (bool, error) {
	return p.next(p.RunStates, &p.runIdx)
}

func (p *MockPins) next(states []bool, idx *int) (bool, error) {
	if p.Err != nil {
		return false, p.Err
	}
	if len(states) == 0 {
		return false, nil
	}
	v := states[*idx]
	if *idx < len(states)-1 {
		*idx++
	}
	return v, nil
}

// MockAudio implements Audio, recording what was played
type MockAudio struct {
	Played []string
	Err    error

	// OnPlay, if set, is invoked for each file before it is recorded
	OnPlay func(path string) error
}

// NewMockAudio creates a mock audio renderer
func NewMockAudio() *MockAudio { return &MockAudio{} }

// PlayFile records the played path
func (a *MockAudio) PlayFile(path string) error {
	if a.Err != nil {
		return a.Err
	}
	if a.OnPlay != nil {
		if err := a.OnPlay(path); err != nil {
			return err
		}
	}
	a.Played = append(a.Played, path)
	return nil
}

// MockLevel implements LevelSource with scripted levels.
// The last level repeats once the script is exhausted.
type MockLevel struct {
	Levels []float64
	Err    error

	index int
}

// NewMockLevel creates a mock receive-level source
func NewMockLevel(levels ...float64) *MockLevel {
	return &MockLevel{Levels: levels}
}

// Level returns the next scripted level
func (l *MockLevel) Level() (float64, error) {
	if l.Err != nil {
		return 0, l.Err
	}
	if len(l.Levels) == 0 {
		return 0, nil
	}
	v := l.Levels[l.index]
	if l.index < len(l.Levels)-1 {
		l.index++
	}
	return v, nil
}

// MockFrameSource implements FrameSource with a fixed frame
type MockFrameSource struct {
	Frame []int16
	Err   error
}

// Frames returns the configured frame
func (s *MockFrameSource) Frames() ([]int16, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Frame, nil
}

// Close is a no-op
func (s *MockFrameSource) Close() error { return nil }
