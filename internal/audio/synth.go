// Package audio turns match cues into sound through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
)

const (
	// SampleRate is the speaker rate.
	SampleRate = beep.SampleRate(44100)

	// MasterVolume scales every cue.
	MasterVolume = 0.3

	bufferLength = 50 * time.Millisecond
)

// queueLength is how many cues may wait for the mixer. Cues beyond it
// are dropped.
const queueLength = 32

// Synth is a vortex.CueSink that synthesizes cues on the speaker. Play only
// queues the cue; a goroutine mixes it in under the speaker lock.
type Synth struct {
	mixer  *beep.Mixer
	volume float64
	lock   func()
	unlock func()

	queue chan vortex.Cue
	done  chan struct{}
	once  sync.Once
}

// NewSynth initializes the speaker and starts an empty mixer on it.
func NewSynth() (*Synth, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(bufferLength)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	s := newSynth(&beep.Mixer{}, speaker.Lock, speaker.Unlock)
	speaker.Play(s.mixer)
	return s, nil
}

// newSynth starts a synth feeding mixer. lock and unlock guard the mixer
// against the playback callback.
func newSynth(mixer *beep.Mixer, lock, unlock func()) *Synth {
	s := &Synth{
		mixer:  mixer,
		volume: MasterVolume,
		lock:   lock,
		unlock: unlock,
		queue:  make(chan vortex.Cue, queueLength),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Play queues the cue without blocking. It is dropped when the queue is
// full or the synth is closed.
func (s *Synth) Play(c vortex.Cue) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.queue <- c:
	default:
	}
}

func (s *Synth) run() {
	for {
		select {
		case <-s.done:
			return
		case c := <-s.queue:
			v, ok := VoiceFor(c)
			if !ok {
				continue
			}
			stream := withVolume(v.Streamer(SampleRate), s.volume)
			s.lock()
			select {
			case <-s.done:
			default:
				s.mixer.Add(stream)
			}
			s.unlock()
		}
	}
}

// Close silences the mixer. Later cues are dropped.
func (s *Synth) Close() {
	s.once.Do(func() {
		close(s.done)
		s.lock()
		s.mixer.Clear()
		s.unlock()
	})
}

// Silent drops every cue.
type Silent struct{}

// Play does nothing.
func (Silent) Play(vortex.Cue) {}

// Close does nothing.
func (Silent) Close() {}

// Sink is a cue sink that can be shut down.
type Sink interface {
	vortex.CueSink
	Close()
}

// Open returns a speaker-backed sink when enabled is true and the speaker
// opens. Otherwise it returns Silent; a speaker failure is logged.
func Open(enabled bool, logger *log.Logger) Sink {
	if !enabled {
		return Silent{}
	}
	s, err := NewSynth()
	if err != nil {
		if logger != nil {
			logger.Warn("sound disabled", "err", err)
		}
		return Silent{}
	}
	return s
}
