package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSquare Wave = iota
	WaveSaw
	WaveTriangle
)

// sample returns the wave value at phase in [0, 1).
func (w Wave) sample(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	}
	return 0
}

// Ramp is how a parameter moves from its start to its end value.
type Ramp int

const (
	RampExponential Ramp = iota
	RampLinear
)

// at returns the ramp value at t in [0, 1].
func (r Ramp) at(from, to, t float64) float64 {
	if r == RampExponential && from > 0 && to > 0 {
		return from * math.Pow(to/from, t)
	}
	return from + (to-from)*t
}

// Gain envelope shared by every cue.
const (
	attackGain  = 0.5
	releaseGain = 0.01
)

// Voice describes one cue: a swept oscillator with a falling gain.
type Voice struct {
	Wave     Wave
	From, To float64 // Hz
	Length   time.Duration
	Ramp     Ramp
}

var voices = map[vortex.Cue]Voice{
	vortex.CueShoot:     {Wave: WaveSquare, From: 880, To: 110, Length: 100 * time.Millisecond, Ramp: RampExponential},
	vortex.CueExplosion: {Wave: WaveSaw, From: 100, To: 0.01, Length: 300 * time.Millisecond, Ramp: RampExponential},
	vortex.CueHit:       {Wave: WaveTriangle, From: 200, To: 100, Length: 100 * time.Millisecond, Ramp: RampLinear},
}

// VoiceFor returns the voice for a cue.
func VoiceFor(c vortex.Cue) (Voice, bool) {
	v, ok := voices[c]
	return v, ok
}

// Streamer renders v at the given rate.
func (v Voice) Streamer(rate beep.SampleRate) beep.Streamer {
	return &voiceStreamer{voice: v, rate: rate, total: rate.N(v.Length)}
}

type voiceStreamer struct {
	voice Voice
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func (s *voiceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.voice.Ramp.at(s.voice.From, s.voice.To, t)
		gain := s.voice.Ramp.at(attackGain, releaseGain, t)

		val := s.voice.Wave.sample(s.phase) * gain
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *voiceStreamer) Err() error { return nil }

// withVolume scales s by a linear factor. math.Log2(0) is -Inf, so zero
// and below mean silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
