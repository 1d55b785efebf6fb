package publisher

import (
	"context"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *domain.Alert) error
}
