package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/hardware"
)

func newTestPlayer() (*Player, *hardware.MockPins, *hardware.MockAudio) {
	pins := hardware.NewMockPins()
	audio := hardware.NewMockAudio()
	p := New(pins, audio, "/phrases", ".wav", 0)
	p.sleep = func(time.Duration) {}
	return p, pins, audio
}

func TestTalkKeysForWholeSequence(t *testing.T) {
	p, pins, audio := newTestPlayer()

	// Audio must always play with PTT asserted
	audio.OnPlay = func(string) error {
		require.True(t, pins.PTT(), "played with PTT released")
		return nil
	}

	err := p.Talk([]string{"fox1.wav", "fox2.wav"}, "/messages")
	require.NoError(t, err)

	assert.Equal(t, []string{"/messages/fox1.wav", "/messages/fox2.wav"}, audio.Played)
	// Exactly one key-up and one key-down for the sequence
	assert.Equal(t, []bool{true, false}, pins.PTTLog)
}

func TestTalkAppendsExtensionForPhrases(t *testing.T) {
	p, _, audio := newTestPlayer()

	err := p.Talk([]string{"hour-08", "am"}, "/phrases")
	require.NoError(t, err)
	assert.Equal(t, []string{"/phrases/hour-08.wav", "/phrases/am.wav"}, audio.Played)
}

func TestTalkUnkeysOnPlaybackError(t *testing.T) {
	p, pins, audio := newTestPlayer()
	audio.Err = assert.AnError

	err := p.Talk([]string{"fox1.wav"}, "/messages")
	assert.Error(t, err)
	assert.False(t, pins.PTT())
}

func TestTimePhrases(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         []string
	}{
		{8, 0, []string{"hour-08", "minute-00", "am"}},
		{0, 5, []string{"hour-12", "minute-05", "am"}},
		{12, 30, []string{"hour-12", "minute-30", "pm"}},
		{23, 59, []string{"hour-11", "minute-55", "pm"}},
		{13, 7, []string{"hour-01", "minute-05", "pm"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimePhrases(tt.hour, tt.minute),
			"%02d:%02d", tt.hour, tt.minute)
	}
}

func TestBatteryPhrases(t *testing.T) {
	tests := []struct {
		volts float64
		want  []string
	}{
		{12.6, []string{"number-12", "point", "number-06", "volts"}},
		{9.0, []string{"number-09", "point", "number-00", "volts"}},
		// Tenths carrying across a volt boundary rounds the whole
		// volts up with it
		{12.96, []string{"number-13", "point", "number-00", "volts"}},
		{15.99, []string{"number-16", "point", "number-00", "volts"}},
	}
	for _, tt := range tests {
		phrases, err := BatteryPhrases(tt.volts)
		require.NoError(t, err, "%.2f V", tt.volts)
		assert.Equal(t, tt.want, phrases, "%.2f V", tt.volts)
	}
}

func TestBatteryPhrasesOutOfRange(t *testing.T) {
	// Out-of-vocabulary voltage is an explicit error, not a silent
	// bad index
	_, err := BatteryPhrases(17.2)
	assert.Error(t, err)

	_, err = BatteryPhrases(-0.5)
	assert.Error(t, err)

	// Rounds up past the top of the vocabulary
	_, err = BatteryPhrases(16.97)
	assert.Error(t, err)
}

func TestAnnounceBatteryPlaysVocabulary(t *testing.T) {
	p, _, audio := newTestPlayer()

	require.NoError(t, p.AnnounceBattery(13.1))
	assert.Equal(t, []string{
		"/phrases/number-13.wav",
		"/phrases/point.wav",
		"/phrases/number-01.wav",
		"/phrases/volts.wav",
	}, audio.Played)
}
