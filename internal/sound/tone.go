// Package sound synthesizes and plays the phase-completion beeps.
package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the PCM rate used for synthesized tones.
const SampleRate = 44100

// Tone is a sine tone. A zero Frequency is silence.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// Pattern is a sequence of tones played back to back.
type Pattern []Tone

// CompletionPattern is three high/low beep pairs, 300ms each with 100ms gaps.
func CompletionPattern() Pattern {
	var pattern Pattern
	for i := 0; i < 3; i++ {
		pattern = append(pattern,
			Tone{Frequency: 2000, Duration: 300 * time.Millisecond},
			Tone{Duration: 100 * time.Millisecond},
			Tone{Frequency: 1000, Duration: 300 * time.Millisecond},
			Tone{Duration: 100 * time.Millisecond},
		)
	}
	return pattern
}

// Duration returns the total playback length.
func (pattern Pattern) Duration() time.Duration {
	var total time.Duration
	for _, tone := range pattern {
		total += tone.Duration
	}
	return total
}

// Render encodes the pattern as mono signed 16-bit little-endian PCM.
// volume is clamped to [0, 1].
func (pattern Pattern) Render(sampleRate int, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))
	amplitude := volume * math.MaxInt16

	var out []byte
	for _, tone := range pattern {
		samples := int(math.Round(tone.Duration.Seconds() * float64(sampleRate)))
		chunk := make([]byte, samples*2)
		if tone.Frequency > 0 {
			for i := 0; i < samples; i++ {
				value := amplitude * math.Sin(2*math.Pi*tone.Frequency*float64(i)/float64(sampleRate))
				binary.LittleEndian.PutUint16(chunk[i*2:], uint16(int16(value)))
			}
		}
		out = append(out, chunk...)
	}
	return out
}
