// Package spectate publishes running matches for read-only viewers: a JSON
// listing, per-match snapshots and a websocket feed of state notifications.
package spectate

import (
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
)

// ErrUnknownMatch is returned for match IDs the hub does not know.
var ErrUnknownMatch = errors.New("spectate: unknown match")

// watchBuffer is how many notifications a slow viewer may fall behind
// before new ones are dropped for it.
const watchBuffer = 32

// MatchInfo describes a published match.
type MatchInfo struct {
	ID        uuid.UUID        `json:"id"`
	Label     string           `json:"label"`
	Mode      string           `json:"mode"`
	State     vortex.State     `json:"state"`
	Score     int              `json:"score"`
	Level     int              `json:"level"`
	Deaths    int              `json:"deaths"`
	DPM       float64          `json:"dpm"`
	Spawned   int              `json:"totalEnemiesSpawned"`
	EndReason vortex.EndReason `json:"endReason,omitempty"`
	StartedAt time.Time        `json:"startedAt"`
}

// Hub tracks published matches and their viewers.
type Hub struct {
	mu       sync.RWMutex
	matches  map[uuid.UUID]*entry
	logger   *log.Logger
	insecure bool
	now      func() time.Time
}

type entry struct {
	id      uuid.UUID
	label   string
	match   *vortex.Match
	started time.Time
	cancel  func()
	removed chan struct{}

	mu       sync.Mutex
	watchers map[chan vortex.Notification]struct{}
	closed   bool
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithInsecureOrigins disables the websocket origin check.
func WithInsecureOrigins() Option {
	return func(h *Hub) { h.insecure = true }
}

// NewHub returns an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		matches: make(map[uuid.UUID]*entry),
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish makes m visible to viewers under a fresh ID. The match is
// unpublished when it is destroyed or Remove is called.
func (h *Hub) Publish(label string, m *vortex.Match) uuid.UUID {
	e := &entry{
		id:       uuid.New(),
		label:    label,
		match:    m,
		started:  h.now(),
		removed:  make(chan struct{}),
		watchers: make(map[chan vortex.Notification]struct{}),
	}
	e.cancel = m.Subscribe(vortex.ObserverFunc(e.broadcast))

	h.mu.Lock()
	h.matches[e.id] = e
	h.mu.Unlock()
	h.logger.Info("match published", "match", e.id, "label", label)

	go func() {
		select {
		case <-m.Done():
			h.Remove(e.id)
		case <-e.removed:
		}
	}()
	return e.id
}

// Remove unpublishes a match and disconnects its viewers.
func (h *Hub) Remove(id uuid.UUID) {
	h.mu.Lock()
	e, ok := h.matches[id]
	delete(h.matches, id)
	h.mu.Unlock()
	if !ok {
		return
	}

	e.cancel()
	e.mu.Lock()
	e.closed = true
	for ch := range e.watchers {
		close(ch)
	}
	e.watchers = nil
	e.mu.Unlock()
	close(e.removed)
	h.logger.Info("match unpublished", "match", id)
}

// List returns every published match, oldest first.
func (h *Hub) List() []MatchInfo {
	h.mu.RLock()
	entries := make([]*entry, 0, len(h.matches))
	for _, e := range h.matches {
		entries = append(entries, e)
	}
	h.mu.RUnlock()

	out := make([]MatchInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info())
	}
	slices.SortFunc(out, func(a, b MatchInfo) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out
}

// Snapshot returns the current state of a published match.
func (h *Hub) Snapshot(id uuid.UUID) (vortex.Snapshot, error) {
	e, err := h.get(id)
	if err != nil {
		return vortex.Snapshot{}, err
	}
	return e.match.Snapshot(), nil
}

// Watch returns a channel of notifications for a published match, starting
// with its current state. The channel is closed when the match is removed.
// Call stop when done watching.
func (h *Hub) Watch(id uuid.UUID) (<-chan vortex.Notification, func(), error) {
	e, err := h.get(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan vortex.Notification, watchBuffer)
	ch <- notificationFrom(e.match.Snapshot())

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}, nil
	}
	e.watchers[ch] = struct{}{}
	e.mu.Unlock()

	stop := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.watchers[ch]; ok {
			delete(e.watchers, ch)
			close(ch)
		}
	}
	return ch, stop, nil
}

func (h *Hub) get(id uuid.UUID) (*entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.matches[id]
	if !ok {
		return nil, ErrUnknownMatch
	}
	return e, nil
}

// broadcast fans a notification out to every viewer without blocking the
// match. Viewers that fell behind miss it.
func (e *entry) broadcast(n vortex.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.watchers {
		select {
		case ch <- n:
		default:
		}
	}
}

func (e *entry) info() MatchInfo {
	s := e.match.Summary()
	return MatchInfo{
		ID:        e.id,
		Label:     e.label,
		Mode:      string(s.Mode),
		State:     s.State,
		Score:     s.Score,
		Level:     s.Level,
		Deaths:    s.Deaths,
		DPM:       s.DPM,
		Spawned:   s.TotalEnemiesSpawned,
		EndReason: s.EndReason,
		StartedAt: e.started,
	}
}

// notificationFrom builds the notification for a snapshot.
func notificationFrom(s vortex.Snapshot) vortex.Notification {
	kinds := make([]string, 0, len(s.PowerUps))
	for _, p := range s.PowerUps {
		kinds = append(kinds, p.Kind)
	}
	return vortex.Notification{
		State:               s.State,
		Score:               s.Score,
		Level:               s.Level,
		DPM:                 s.DPM,
		PowerUps:            kinds,
		TotalEnemiesSpawned: s.TotalEnemiesSpawned,
		Deaths:              s.Deaths,
	}
}
