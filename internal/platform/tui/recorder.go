package tui

//go:generate go tool mockgen -destination=./mocks/scorestore_mock.go -package=mocks . ScoreStore

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

// ScoreStore is the part of the score database the front end writes to.
type ScoreStore interface {
	SaveScore(gameID string, score int) (int64, error)
	SaveMatch(r storage.MatchRecord) (int64, error)
	HighScore(gameID string) (int, error)
}

// scoreStore keeps a nil *storage.Store from turning into a non-nil
// interface.
func scoreStore(s *storage.Store) ScoreStore {
	if s == nil {
		return nil
	}
	return s
}

// TrackEvent is what Recorder.Track observed.
type TrackEvent int

const (
	TrackNone TrackEvent = iota
	TrackStarted
	TrackFinished
)

// Recorder follows the matches of one game mode and persists each one
// when it ends: the score goes to the high score table and the counters
// to a match record.
type Recorder struct {
	store  ScoreStore
	logger *log.Logger
	gameID string

	id     uuid.UUID
	active bool
	best   int
}

// NewRecorder creates a recorder for gameID. store may be nil, in which
// case nothing is persisted but the best score is still tracked.
func NewRecorder(store ScoreStore, gameID string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Recorder{store: store, logger: logger, gameID: gameID}
	if store != nil {
		best, err := store.HighScore(gameID)
		if err != nil {
			logger.Warn("cannot load high score", "game", gameID, "err", err)
		}
		r.best = best
	}
	return r
}

// Track looks at the match counters once per tick. A match starts when it
// is first seen running and finishes when it reaches GAMEOVER or goes back
// to the menu.
func (r *Recorder) Track(s vortex.Summary) TrackEvent {
	switch s.State {
	case vortex.StatePlaying, vortex.StatePaused:
		if !r.active {
			r.active = true
			r.id = uuid.New()
			return TrackStarted
		}
	case vortex.StateGameOver, vortex.StateMenu:
		if r.active {
			r.active = false
			r.save(s)
			return TrackFinished
		}
	}
	return TrackNone
}

// Abort records a still running match as quit.
func (r *Recorder) Abort(s vortex.Summary) {
	if !r.active {
		return
	}
	r.active = false
	s.EndReason = vortex.EndQuit
	r.save(s)
}

// Best returns the best score seen, including the one loaded at start.
func (r *Recorder) Best() int { return r.best }

// MatchID returns the ID of the current or last match.
func (r *Recorder) MatchID() uuid.UUID { return r.id }

func (r *Recorder) save(s vortex.Summary) {
	reason := s.EndReason
	if reason == vortex.EndNone {
		reason = vortex.EndQuit
	}
	r.best = max(r.best, s.Score)

	r.logger.Info("match finished",
		"match", r.id,
		"game", r.gameID,
		"score", s.Score,
		"deaths", s.Deaths,
		"reason", reason,
	)
	if r.store == nil {
		return
	}

	if s.Score > 0 {
		if _, err := r.store.SaveScore(r.gameID, s.Score); err != nil {
			r.logger.Warn("cannot save score", "game", r.gameID, "err", err)
		}
	}
	rec := storage.MatchRecord{
		MatchID:        r.id.String(),
		GameID:         r.gameID,
		Score:          s.Score,
		Level:          s.Level,
		Deaths:         s.Deaths,
		DPM:            s.DPM,
		EnemiesSpawned: s.TotalEnemiesSpawned,
		EndReason:      string(reason),
		Duration:       s.Elapsed,
	}
	if _, err := r.store.SaveMatch(rec); err != nil {
		r.logger.Warn("cannot save match", "match", r.id, "err", err)
	}
}
