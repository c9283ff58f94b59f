package score

import (
	"time"

	"git.lost.host/meutraa/strum/internal/game"
)

// Scorer decides what each tick of the game loop means for the player.
type Scorer interface {
	// Tick judges one controller snapshot against the current scroll
	// position. The returned slice is reused by the next call.
	Tick(state game.ControllerState) []game.Judgement
	Done() bool
}

// Store keeps the results of finished sessions.
type Store interface {
	Save(song *game.Song, tally Tally, at time.Time) error
	Load(song *game.Song) ([]Record, error)
	Close() error
}

// Record is one stored session.
type Record struct {
	Sum   string
	Tally Tally
	At    time.Time
}
