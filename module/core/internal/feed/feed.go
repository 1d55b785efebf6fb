package feed

import (
	"context"
	"time"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

// Source produces successive device positions. The simulator and any
// real telemetry ingester sit behind this same contract so they are
// swappable, and tests can drive the tracker with a scripted source.
type Source interface {
	Next() domain.Position
}

// Sink receives positions, typically the tracker service.
type Sink interface {
	UpdatePosition(ctx context.Context, pos domain.Position) []domain.Alert
}

// Run pulls a position from src on every tick and pushes it into sink
// until ctx is cancelled. Cancelling stops the ticker, so no updates
// are delivered after teardown.
func Run(ctx context.Context, src Source, sink Sink, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sink.UpdatePosition(ctx, src.Next())
		}
	}
}
