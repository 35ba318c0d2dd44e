package tui_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui/mocks"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

func playing(score int) vortex.Summary {
	return vortex.Summary{State: vortex.StatePlaying, Mode: "SURVIVAL", Score: score, Level: 1 + score/1000}
}

func TestRecorderSavesFinishedMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockScoreStore(ctrl)

	store.EXPECT().HighScore("vortex_survival").Return(1500, nil)
	rec := tui.NewRecorder(store, "vortex_survival", nil)
	if rec.Best() != 1500 {
		t.Fatalf("Best() = %d, expected the stored 1500", rec.Best())
	}

	if ev := rec.Track(playing(0)); ev != tui.TrackStarted {
		t.Fatalf("first PLAYING summary = %v, expected TrackStarted", ev)
	}
	if ev := rec.Track(playing(500)); ev != tui.TrackNone {
		t.Fatalf("second PLAYING summary = %v, expected TrackNone", ev)
	}
	id := rec.MatchID().String()

	end := vortex.Summary{
		State:               vortex.StateGameOver,
		EndReason:           vortex.EndSurvivalThreshold,
		Score:               2100,
		Level:               3,
		Deaths:              31,
		DPM:                 31.4,
		TotalEnemiesSpawned: 77,
		Elapsed:             time.Minute,
	}
	gomock.InOrder(
		store.EXPECT().SaveScore("vortex_survival", 2100).Return(int64(1), nil),
		store.EXPECT().SaveMatch(storage.MatchRecord{
			MatchID:        id,
			GameID:         "vortex_survival",
			Score:          2100,
			Level:          3,
			Deaths:         31,
			DPM:            31.4,
			EnemiesSpawned: 77,
			EndReason:      "survival_threshold",
			Duration:       time.Minute,
		}).Return(int64(1), nil),
	)
	if ev := rec.Track(end); ev != tui.TrackFinished {
		t.Fatalf("GAMEOVER summary = %v, expected TrackFinished", ev)
	}
	if rec.Best() != 2100 {
		t.Errorf("Best() = %d after a record, expected 2100", rec.Best())
	}

	// Staying on the game over screen records nothing more.
	rec.Track(end)
	rec.Abort(end)
}

func TestRecorderNewMatchGetsNewID(t *testing.T) {
	rec := tui.NewRecorder(nil, "vortex", nil)

	rec.Track(playing(0))
	first := rec.MatchID()
	rec.Track(vortex.Summary{State: vortex.StateGameOver, EndReason: vortex.EndGameOver})
	rec.Track(playing(0))
	if rec.MatchID() == first {
		t.Error("restarted match kept the previous match ID")
	}
}

func TestRecorderZeroScoreSkipsScoreTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockScoreStore(ctrl)
	store.EXPECT().HighScore("vortex").Return(0, nil)

	rec := tui.NewRecorder(store, "vortex", nil)
	rec.Track(playing(0))

	store.EXPECT().SaveScore(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().SaveMatch(gomock.Cond(func(r storage.MatchRecord) bool {
		return r.EndReason == "quit" && r.Score == 0
	})).Return(int64(1), nil)

	// Going back to the match menu counts as quitting.
	rec.Track(vortex.Summary{State: vortex.StateMenu, EndReason: vortex.EndQuit})
}

func TestRecorderAbortRunningMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockScoreStore(ctrl)
	store.EXPECT().HighScore("vortex_infinite").Return(0, errors.New("disk gone"))

	rec := tui.NewRecorder(store, "vortex_infinite", nil)
	rec.Abort(playing(100)) // nothing running yet

	rec.Track(playing(0))
	store.EXPECT().SaveScore("vortex_infinite", 300).Return(int64(0), errors.New("disk gone"))
	store.EXPECT().SaveMatch(gomock.Cond(func(r storage.MatchRecord) bool {
		return r.EndReason == "quit" && r.Score == 300
	})).Return(int64(0), errors.New("disk gone"))

	rec.Abort(playing(300))
	rec.Abort(playing(300))
}
