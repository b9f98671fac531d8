package sound

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionPattern(t *testing.T) {
	pattern := CompletionPattern()

	require.Len(t, pattern, 12)
	assert.Equal(t, 2400*time.Millisecond, pattern.Duration())
	for i := 0; i < len(pattern); i += 4 {
		assert.Equal(t, 2000.0, pattern[i].Frequency)
		assert.Zero(t, pattern[i+1].Frequency)
		assert.Equal(t, 1000.0, pattern[i+2].Frequency)
		assert.Zero(t, pattern[i+3].Frequency)
	}
}

func TestRender_Length(t *testing.T) {
	pattern := Pattern{
		{Frequency: 440, Duration: 100 * time.Millisecond},
		{Duration: 50 * time.Millisecond},
	}

	pcm := pattern.Render(8000, 1)
	assert.Len(t, pcm, (800+400)*2)
	assert.Equal(t, make([]byte, 800), pcm[1600:], "gap renders as silence")
}

func TestRender_VolumeBounds(t *testing.T) {
	pattern := Pattern{{Frequency: 1000, Duration: 10 * time.Millisecond}}

	peak := func(pcm []byte) int {
		max := 0
		for i := 0; i+1 < len(pcm); i += 2 {
			v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
		return max
	}

	assert.Zero(t, peak(pattern.Render(SampleRate, 0)))
	assert.LessOrEqual(t, peak(pattern.Render(SampleRate, 0.5)), 16384)
	assert.Greater(t, peak(pattern.Render(SampleRate, 0.5)), 10000)
	assert.Equal(t, pattern.Render(SampleRate, 1), pattern.Render(SampleRate, 3))
}

type recordingPlayer struct {
	mu    sync.Mutex
	plays []Pattern
	err   error
}

func (player *recordingPlayer) Play(_ context.Context, pattern Pattern) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.plays = append(player.plays, pattern)
	return player.err
}

func TestBeeper_Notify(t *testing.T) {
	player := &recordingPlayer{}
	beeper := NewBeeper(player, true, nil)

	beeper.Notify()
	beeper.Wait()

	require.Len(t, player.plays, 1)
	assert.Equal(t, CompletionPattern(), player.plays[0])
}

func TestBeeper_Disabled(t *testing.T) {
	player := &recordingPlayer{}
	beeper := NewBeeper(player, false, nil)

	beeper.Notify()
	beeper.Wait()

	assert.Empty(t, player.plays)
}

func TestBeeper_LogsFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	player := &recordingPlayer{err: errors.New("no device")}
	beeper := NewBeeper(player, true, logger)

	beeper.Notify()
	beeper.Wait()

	assert.Contains(t, logs.String(), "completion sound failed")
	assert.Contains(t, logs.String(), "no device")
}
