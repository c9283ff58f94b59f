package display

import (
	"context"
	"time"
)

// DefaultPeriod refreshes consumers at 60 Hz.
const DefaultPeriod = time.Second / 60

// Consumer takes published frames somewhere a player can see them.
type Consumer interface {
	// Run shows frames until ctx is cancelled. A cancelled context is not an
	// error.
	Run(ctx context.Context) error
	Close() error
}

// every calls fn once a period, measured start to start, until ctx is done or
// fn fails.
func every(ctx context.Context, period time.Duration, fn func() error) error {
	if period <= 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		if err := fn(); nil != err {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
