package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
)

func TestVoicesForEveryCue(t *testing.T) {
	for _, c := range []vortex.Cue{vortex.CueShoot, vortex.CueExplosion, vortex.CueHit} {
		if _, ok := VoiceFor(c); !ok {
			t.Errorf("VoiceFor(%q) missing", c)
		}
	}
	if _, ok := VoiceFor("fanfare"); ok {
		t.Error("VoiceFor(\"fanfare\") should not exist")
	}
}

func TestVoiceLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		cue  vortex.Cue
		want int
	}{
		{vortex.CueShoot, 800},
		{vortex.CueExplosion, 2400},
		{vortex.CueHit, 800},
	}
	for _, tt := range tests {
		v, _ := VoiceFor(tt.cue)
		s := v.Streamer(rate)

		total := 0
		buf := make([][2]float64, 333)
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if total != tt.want {
			t.Errorf("%s: streamed %d samples, expected %d", tt.cue, total, tt.want)
		}
		if n, ok := s.Stream(buf); n != 0 || ok {
			t.Errorf("%s: drained stream returned (%d, %v)", tt.cue, n, ok)
		}
	}
}

func TestVoiceSamplesWithinGain(t *testing.T) {
	rate := beep.SampleRate(8000)
	for c, v := range voices {
		buf := make([][2]float64, rate.N(v.Length))
		n, _ := v.Streamer(rate).Stream(buf)
		for i := range n {
			if math.Abs(buf[i][0]) > attackGain+1e-9 || buf[i][0] != buf[i][1] {
				t.Fatalf("%s: sample %d = %v", c, i, buf[i])
			}
		}
		if first := math.Abs(buf[0][0]); c == vortex.CueShoot && first != attackGain {
			t.Errorf("%s: first sample %v, expected %v", c, first, attackGain)
		}
	}
}

func TestWaveShapes(t *testing.T) {
	tests := []struct {
		wave  Wave
		phase float64
		want  float64
	}{
		{WaveSquare, 0.1, 1},
		{WaveSquare, 0.6, -1},
		{WaveSaw, 0, -1},
		{WaveSaw, 0.75, 0.5},
		{WaveTriangle, 0, -1},
		{WaveTriangle, 0.5, 1},
		{WaveTriangle, 0.25, 0},
	}
	for _, tt := range tests {
		if got := tt.wave.sample(tt.phase); got != tt.want {
			t.Errorf("Wave(%d).sample(%v) = %v, expected %v", tt.wave, tt.phase, got, tt.want)
		}
	}
}

func TestRamp(t *testing.T) {
	tests := []struct {
		ramp         Ramp
		from, to, at float64
		want         float64
	}{
		{RampLinear, 200, 100, 0.5, 150},
		{RampExponential, 880, 110, 0, 880},
		{RampExponential, 880, 110, 1, 110},
		{RampExponential, 800, 200, 0.5, 400},
		{RampExponential, 100, 0, 0.5, 50}, // zero target falls back to linear
	}
	for _, tt := range tests {
		if got := tt.ramp.at(tt.from, tt.to, tt.at); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ramp(%d).at(%v, %v, %v) = %v, expected %v", tt.ramp, tt.from, tt.to, tt.at, got, tt.want)
		}
	}
}

func TestWithVolume(t *testing.T) {
	v, _ := VoiceFor(vortex.CueShoot)
	rate := beep.SampleRate(8000)

	loud := make([][2]float64, 10)
	v.Streamer(rate).Stream(loud)
	quiet := make([][2]float64, 10)
	withVolume(v.Streamer(rate), MasterVolume).Stream(quiet)
	for i := range loud {
		if math.Abs(quiet[i][0]-loud[i][0]*MasterVolume) > 1e-9 {
			t.Fatalf("sample %d: %v, expected %v", i, quiet[i][0], loud[i][0]*MasterVolume)
		}
	}

	muted := make([][2]float64, 10)
	withVolume(v.Streamer(rate), 0).Stream(muted)
	for i := range muted {
		if muted[i][0] != 0 {
			t.Fatalf("muted sample %d = %v", i, muted[i][0])
		}
	}
}

func TestOpenDisabledIsSilent(t *testing.T) {
	s := Open(false, nil)
	if _, ok := s.(Silent); !ok {
		t.Fatalf("Open(false) = %T, expected Silent", s)
	}
	s.Play(vortex.CueExplosion)
	s.Close()
}
