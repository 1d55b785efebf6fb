package service

import (
	"context"
	"sync"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

const maxTrailPoints = 50

// TrackerService owns the live monitoring state: current position, the
// recent-path trail and the safe zone configuration. Geofence
// evaluation runs synchronously inside every position update, so it
// always observes the position produced by the most recent tick.
type TrackerService struct {
	mu           sync.Mutex
	pos          domain.Position
	trail        []domain.Position
	trailEnabled bool
	zones        []domain.SafeZone

	geofence *GeofenceService
	onUpdate func()
}

func NewTrackerService(start domain.Position, zones []domain.SafeZone, geofence *GeofenceService) *TrackerService {
	return &TrackerService{
		pos:      start,
		zones:    append([]domain.SafeZone(nil), zones...),
		geofence: geofence,
	}
}

// SetOnUpdate registers a callback invoked after every state change,
// used to push snapshots to live display surfaces. Must be called
// before the first update.
func (s *TrackerService) SetOnUpdate(fn func()) {
	s.onUpdate = fn
}

// UpdatePosition records a new position, extends the trail and runs a
// geofence pass against the current zone configuration.
func (s *TrackerService) UpdatePosition(ctx context.Context, pos domain.Position) []domain.Alert {
	s.mu.Lock()
	s.pos = pos
	if s.trailEnabled {
		s.trail = append(s.trail, pos)
		if len(s.trail) > maxTrailPoints {
			s.trail = s.trail[len(s.trail)-maxTrailPoints:]
		}
	}
	zones := append([]domain.SafeZone(nil), s.zones...)
	s.mu.Unlock()

	created := s.geofence.CheckAndAlert(ctx, pos, zones)
	s.notify()
	return created
}

// UpdateZone edits a zone's radius and enabled flag. The radius is
// validated only when the zone is being enabled, so the evaluator never
// sees an enabled zone with a non-positive radius while disabling stays
// unconditional. A successful edit triggers an immediate evaluation
// pass against the current position.
func (s *TrackerService) UpdateZone(ctx context.Context, id string, radiusMeters float64, enabled bool) error {
	if enabled {
		if err := domain.ValidateRadius(radiusMeters); err != nil {
			return err
		}
	}

	s.mu.Lock()
	idx := -1
	for i := range s.zones {
		if s.zones[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrZoneNotFound
	}
	s.zones[idx].RadiusMeters = radiusMeters
	s.zones[idx].Enabled = enabled
	pos := s.pos
	zones := append([]domain.SafeZone(nil), s.zones...)
	s.mu.Unlock()

	s.geofence.CheckAndAlert(ctx, pos, zones)
	s.notify()
	return nil
}

func (s *TrackerService) Position() domain.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *TrackerService) Zones() []domain.SafeZone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SafeZone(nil), s.zones...)
}

func (s *TrackerService) SetTrailEnabled(enabled bool) {
	s.mu.Lock()
	s.trailEnabled = enabled
	if !enabled {
		s.trail = nil
	}
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns the data the map surface renders: marker position,
// trail (oldest first) and zone circles.
func (s *TrackerService) Snapshot() domain.TrackerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.TrackerSnapshot{
		Position:     s.pos,
		Trail:        append([]domain.Position(nil), s.trail...),
		TrailEnabled: s.trailEnabled,
		Zones:        append([]domain.SafeZone(nil), s.zones...),
	}
}

func (s *TrackerService) notify() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
