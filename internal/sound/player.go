package sound

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timerp/internal/logging"

	"github.com/ebitengine/oto/v3"
)

// Player plays a pattern and returns once playback has finished.
type Player interface {
	Play(ctx context.Context, pattern Pattern) error
}

// OtoPlayer plays patterns on the default audio device.
type OtoPlayer struct {
	volume float64

	once    sync.Once
	context *oto.Context
	initErr error
}

// NewOtoPlayer creates a player; the audio device is opened on first use.
func NewOtoPlayer(volume float64) *OtoPlayer {
	return &OtoPlayer{volume: volume}
}

// Play renders the pattern and blocks until it has been played.
func (player *OtoPlayer) Play(ctx context.Context, pattern Pattern) error {
	player.once.Do(player.open)
	if player.initErr != nil {
		return player.initErr
	}

	stream := player.context.NewPlayer(bytes.NewReader(pattern.Render(SampleRate, player.volume)))
	defer func() {
		_ = stream.Close()
	}()
	stream.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for stream.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("play pattern: %w", err)
	}
	return nil
}

func (player *OtoPlayer) open() {
	options := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	audioContext, ready, err := oto.NewContext(options)
	if err != nil {
		player.initErr = fmt.Errorf("open audio device: %w", err)
		return
	}
	<-ready
	player.context = audioContext
}

// Beeper plays the completion pattern in the background.
type Beeper struct {
	player  Player
	enabled bool
	logger  *slog.Logger
	pattern Pattern
	wg      sync.WaitGroup
}

// NewBeeper wraps player. A disabled beeper never touches the audio device.
func NewBeeper(player Player, enabled bool, logger *slog.Logger) *Beeper {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Beeper{
		player:  player,
		enabled: enabled,
		logger:  logger,
		pattern: CompletionPattern(),
	}
}

// Notify starts the completion pattern and returns immediately. Playback runs to
// completion; failures are logged and go no further.
func (beeper *Beeper) Notify() {
	if !beeper.enabled || beeper.player == nil {
		return
	}
	beeper.wg.Add(1)
	go func() {
		defer beeper.wg.Done()
		if err := beeper.player.Play(context.Background(), beeper.pattern); err != nil {
			beeper.logger.Warn("completion sound failed", "err", err)
		}
	}()
}

// Wait blocks until every started pattern has finished.
func (beeper *Beeper) Wait() {
	beeper.wg.Wait()
}
