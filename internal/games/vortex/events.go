package vortex

//go:generate go tool mockgen -destination=./mocks/cuesink_mock.go -package=mocks . CueSink
//go:generate go tool mockgen -destination=./mocks/observer_mock.go -package=mocks . Observer

// State is the match state machine position.
type State string

const (
	StateMenu     State = "MENU"
	StatePlaying  State = "PLAYING"
	StatePaused   State = "PAUSED"
	StateGameOver State = "GAMEOVER"
)

// EndReason records why a match left PLAYING for good.
type EndReason string

const (
	EndNone              EndReason = ""
	EndGameOver          EndReason = "gameover"
	EndSurvivalThreshold EndReason = "survival_threshold"
	EndQuit              EndReason = "quit"
)

// Cue is a named audio cue.
type Cue string

const (
	CueShoot     Cue = "shoot"
	CueExplosion Cue = "explosion"
	CueHit       Cue = "hit"
)

// CueSink receives fire-and-forget audio cues. Play must not block.
type CueSink interface {
	Play(cue Cue)
}

// Notification is the state report sent to observers after state-relevant
// mutations and periodically while playing.
type Notification struct {
	State               State    `json:"state"`
	Score               int      `json:"score"`
	Level               int      `json:"level"`
	DPM                 float64  `json:"dpm"`
	PowerUps            []string `json:"powerUps"`
	TotalEnemiesSpawned int      `json:"totalEnemiesSpawned"`
	Deaths              int      `json:"deaths"`
}

// Observer receives state notifications. Implementations must not call
// back into the match.
type Observer interface {
	OnStateChange(n Notification)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Notification)

// OnStateChange calls f(n).
func (f ObserverFunc) OnStateChange(n Notification) { f(n) }

type nopSink struct{}

func (nopSink) Play(Cue) {}
