package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/publisher"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store"
)

// DefaultBreachCooldown is the window during which repeated breaches of
// the same zone do not generate additional alerts.
const DefaultBreachCooldown = 300 * time.Second

type GeofenceService struct {
	// mu serializes whole evaluation passes: the check-then-append per
	// zone must be atomic, and passes arrive concurrently from the
	// position feed and from zone-configuration edits.
	mu        sync.Mutex
	store     store.AlertStore
	publisher publisher.AlertPublisher
	cooldown  time.Duration
	now       func() time.Time
}

func NewGeofenceService(st store.AlertStore, pub publisher.AlertPublisher) *GeofenceService {
	return &GeofenceService{
		store:     st,
		publisher: pub,
		cooldown:  DefaultBreachCooldown,
		now:       time.Now,
	}
}

// Evaluate returns the ids of enabled zones whose center is farther
// from pos than their radius. Disabled zones are never evaluated. Pure
// query; does not touch the alert store.
func (s *GeofenceService) Evaluate(pos domain.Position, zones []domain.SafeZone) []string {
	var breached []string
	for _, z := range zones {
		if !z.Enabled {
			continue
		}
		d := DistanceMeters(pos, domain.Position{Lat: z.Lat, Lng: z.Lng})
		if d > z.RadiusMeters {
			breached = append(breached, z.ID)
		}
	}
	return breached
}

// CheckAndAlert evaluates zones sequentially and emits one alert per
// newly-breached zone, suppressing duplicates inside the cooldown
// window. Each new alert is committed to the store before the next zone
// is checked, so zones breaching in the same pass cannot race each
// other. Returns the alerts created in this pass.
func (s *GeofenceService) CheckAndAlert(ctx context.Context, pos domain.Position, zones []domain.SafeZone) []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created []domain.Alert
	now := s.now()
	for _, z := range zones {
		if !z.Enabled {
			continue
		}
		d := DistanceMeters(pos, domain.Position{Lat: z.Lat, Lng: z.Lng})
		if d <= z.RadiusMeters {
			continue
		}

		// cooldown runs off alert timestamps only, so toggling the
		// zone off and on does not bypass it
		if existing := s.store.FindRecent(domain.AlertGeofenceBreach, z.ID, now.Add(-s.cooldown)); existing != nil {
			continue
		}

		alert := domain.Alert{
			ID:          uuid.NewString(),
			Kind:        domain.AlertGeofenceBreach,
			CreatedAt:   now,
			Description: fmt.Sprintf("Exited safe zone: %s", z.Name),
			ZoneID:      z.ID,
			Lat:         pos.Lat,
			Lng:         pos.Lng,
			Status:      domain.AlertPending,
			Severity:    domain.SeverityCritical,
		}
		s.store.Append(alert)
		created = append(created, alert)

		if err := s.publisher.PublishAlert(ctx, &alert); err != nil {
			log.Printf("publish breach alert for zone %s: %v", z.ID, err)
		}
	}
	return created
}
