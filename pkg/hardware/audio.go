package hardware

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ExecAudio implements Audio by shelling out to an external player
// command (aplay by default). Playback is synchronous; the call
// returns when the player exits.
type ExecAudio struct {
	command []string
}

// NewExecAudio creates an audio renderer from a command string,
// e.g. "aplay -q". The file path is appended as the final argument.
func NewExecAudio(command string) *ExecAudio {
	return &ExecAudio{command: strings.Fields(command)}
}

// PlayFile plays one file to completion
func (a *ExecAudio) PlayFile(path string) error {
	if len(a.command) == 0 {
		return fmt.Errorf("no play command configured")
	}
	args := append(append([]string{}, a.command[1:]...), path)
	cmd := exec.Command(a.command[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to play %s: %w", path, err)
	}
	return nil
}

// FrameSource supplies mono 16-bit audio frames from the receiver
type FrameSource interface {
	Frames() ([]int16, error)
	Close() error
}

// ExecFrameSource implements FrameSource by reading raw S16_LE samples
// from the stdout of a capture command (arecord by default).
type ExecFrameSource struct {
	command   []string
	frameSize int

	cmd    *exec.Cmd
	stdout io.ReadCloser
	buf    []byte
}

// NewExecFrameSource creates a capture source. frameSize is the number
// of samples returned per Frames call.
func NewExecFrameSource(command string, frameSize int) *ExecFrameSource {
	return &ExecFrameSource{
		command:   strings.Fields(command),
		frameSize: frameSize,
		buf:       make([]byte, frameSize*2),
	}
}

// Frames reads the next full frame, starting the capture command on
// first use
func (s *ExecFrameSource) Frames() ([]int16, error) {
	if s.cmd == nil {
		if err := s.start(); err != nil {
			return nil, err
		}
	}

	if _, err := io.ReadFull(s.stdout, s.buf); err != nil {
		return nil, fmt.Errorf("failed to read audio frame: %w", err)
	}

	samples := make([]int16, s.frameSize)
	for i := range samples {
		samples[i] = int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
	}
	return samples, nil
}

func (s *ExecFrameSource) start() error {
	if len(s.command) == 0 {
		return fmt.Errorf("no capture command configured")
	}
	cmd := exec.Command(s.command[0], s.command[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open capture pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start capture command: %w", err)
	}
	s.cmd = cmd
	s.stdout = stdout
	return nil
}

// Close stops the capture command
func (s *ExecFrameSource) Close() error {
	if s.cmd == nil {
		return nil
	}
	s.stdout.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	s.cmd = nil
	return nil
}
