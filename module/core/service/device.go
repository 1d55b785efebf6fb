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

const lowBatteryThreshold = 20

// DeviceService tracks the wearable's health readouts and raises a
// low-battery warning when charge drops below the threshold, reusing
// the same cooldown window as geofence alerts.
type DeviceService struct {
	mu     sync.Mutex
	health domain.DeviceHealth

	store     store.AlertStore
	publisher publisher.AlertPublisher
	cooldown  time.Duration
	now       func() time.Time
}

func NewDeviceService(st store.AlertStore, pub publisher.AlertPublisher) *DeviceService {
	return &DeviceService{
		health: domain.DeviceHealth{
			Battery:        82,
			SignalStrength: 4,
			GPSStatus:      domain.GPSActive,
			LastSeen:       time.Now(),
			Status:         domain.DeviceOnline,
		},
		store:     st,
		publisher: pub,
		cooldown:  DefaultBreachCooldown,
		now:       time.Now,
	}
}

func (s *DeviceService) Health() domain.DeviceHealth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health
}

// Update applies a telemetry readout. pos is the device position the
// readout arrived with, used to stamp any alert it raises.
func (s *DeviceService) Update(ctx context.Context, health domain.DeviceHealth, pos domain.Position) {
	now := s.now()
	health.LastSeen = now

	s.mu.Lock()
	s.health = health
	s.mu.Unlock()

	if health.Battery >= lowBatteryThreshold || health.Status == domain.DeviceCharging {
		return
	}
	if existing := s.store.FindRecent(domain.AlertLowBattery, "", now.Add(-s.cooldown)); existing != nil {
		return
	}

	alert := domain.Alert{
		ID:          uuid.NewString(),
		Kind:        domain.AlertLowBattery,
		CreatedAt:   now,
		Description: fmt.Sprintf("Device battery low: %d%%", health.Battery),
		Lat:         pos.Lat,
		Lng:         pos.Lng,
		Status:      domain.AlertPending,
		Severity:    domain.SeverityWarning,
	}
	s.store.Append(alert)
	if err := s.publisher.PublishAlert(ctx, &alert); err != nil {
		log.Printf("publish low battery alert: %v", err)
	}
}
