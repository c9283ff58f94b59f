package input

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/game"
)

// ErrQuit is returned by a source when the player asks to stop.
var ErrQuit = errors.New("quit requested")

// DefaultPeriod polls at 60 Hz.
const DefaultPeriod = time.Second / 60

// Source produces the current controller state. Poll does its own I/O and
// decoding and is only ever called from one goroutine.
type Source interface {
	Poll() (game.ControllerState, error)
	Close() error
}

// Reader copies a Source into the shared controller state at a fixed rate.
type Reader struct {
	Source Source
	Shared *game.SharedController
	Period time.Duration
	Logger *slog.Logger
}

// Run polls until ctx is cancelled or the source fails. A cancelled context
// is not an error.
func (r *Reader) Run(ctx context.Context) error {
	period := r.Period
	if period <= 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var last game.ControllerState
	for {
		if nil != ctx.Err() {
			return nil
		}
		state, err := r.Source.Poll()
		if nil != err {
			return err
		}
		r.Shared.Set(state)
		if nil != r.Logger && state != last {
			r.Logger.Debug("controller", "lanes", state.Lanes.String(), "strum", state.Strum)
		}
		last = state

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
