package publisher

import (
	"context"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

var _ AlertPublisher = (*NoopPublisher)(nil)

// NoopPublisher is used when no message broker is configured. Alerts
// are still stored and served locally; they are just not fanned out.
type NoopPublisher struct{}

func (NoopPublisher) PublishAlert(_ context.Context, _ *domain.Alert) error {
	return nil
}
