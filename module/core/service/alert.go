package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/publisher"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store"
)

type AlertService struct {
	store     store.AlertStore
	publisher publisher.AlertPublisher
	now       func() time.Time
}

func NewAlertService(st store.AlertStore, pub publisher.AlertPublisher) *AlertService {
	return &AlertService{
		store:     st,
		publisher: pub,
		now:       time.Now,
	}
}

func (s *AlertService) List(ctx context.Context) []domain.Alert {
	return s.store.List()
}

func (s *AlertService) Pending(ctx context.Context) []domain.Alert {
	return s.store.Pending()
}

// Resolve is idempotent: resolving an unknown or already-resolved alert
// is a no-op.
func (s *AlertService) Resolve(ctx context.Context, id string) bool {
	return s.store.Resolve(id)
}

// RaiseSOS creates an SOS alert at the given position. Every press is a
// distinct emergency, so SOS alerts are never deduplicated.
func (s *AlertService) RaiseSOS(ctx context.Context, pos domain.Position) domain.Alert {
	alert := domain.Alert{
		ID:          uuid.NewString(),
		Kind:        domain.AlertSOS,
		CreatedAt:   s.now(),
		Description: "SOS triggered by user",
		Lat:         pos.Lat,
		Lng:         pos.Lng,
		Status:      domain.AlertPending,
		Severity:    domain.SeverityCritical,
	}
	s.store.Append(alert)
	if err := s.publisher.PublishAlert(ctx, &alert); err != nil {
		log.Printf("publish sos alert: %v", err)
	}
	return alert
}
