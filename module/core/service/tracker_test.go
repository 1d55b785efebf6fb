package service

import (
	"context"
	"errors"
	"testing"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store/memory"
)

func newTestTracker(zones []domain.SafeZone) (*TrackerService, *memory.AlertStore) {
	st := memory.NewAlertStore()
	geofence := NewGeofenceService(st, &mockAlertPublisher{})
	tracker := NewTrackerService(domain.Position{Lat: 40.7128, Lng: -74.0060}, zones, geofence)
	return tracker, st
}

func TestUpdatePosition_BreachToResolve(t *testing.T) {
	// end-to-end: zone "Home" at (40.7128, -74.0060), radius 200m
	zones := []domain.SafeZone{{
		ID: "1", Name: "Home", Lat: 40.7128, Lng: -74.0060,
		Type: domain.ZoneHome, RadiusMeters: 200, Enabled: true,
	}}
	tracker, st := newTestTracker(zones)

	// ~778m north of home
	created := tracker.UpdatePosition(context.Background(), domain.Position{Lat: 40.7198, Lng: -74.0060})
	if len(created) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(created))
	}
	alert := created[0]
	if alert.Kind != domain.AlertGeofenceBreach || alert.Severity != domain.SeverityCritical || alert.Status != domain.AlertPending {
		t.Errorf("unexpected alert: %+v", alert)
	}
	if alert.Description != "Exited safe zone: Home" {
		t.Errorf("unexpected description: %s", alert.Description)
	}

	if !st.Resolve(alert.ID) {
		t.Fatal("expected resolve to succeed")
	}
	for _, a := range st.Pending() {
		if a.ID == alert.ID {
			t.Error("resolved alert still pending")
		}
	}
}

func TestUpdatePosition_InsideZoneNoAlert(t *testing.T) {
	zones := []domain.SafeZone{{
		ID: "1", Name: "Home", Lat: 40.7128, Lng: -74.0060,
		Type: domain.ZoneHome, RadiusMeters: 200, Enabled: true,
	}}
	tracker, st := newTestTracker(zones)

	created := tracker.UpdatePosition(context.Background(), domain.Position{Lat: 40.7128, Lng: -74.0060})
	if len(created) != 0 {
		t.Fatalf("expected 0 alerts, got %d", len(created))
	}
	if len(st.List()) != 0 {
		t.Errorf("expected empty store, got %d", len(st.List()))
	}
}

func TestUpdateZone_Validation(t *testing.T) {
	zones := []domain.SafeZone{{
		ID: "1", Name: "Home", Lat: 40.7128, Lng: -74.0060,
		Type: domain.ZoneHome, RadiusMeters: 200, Enabled: true,
	}}
	tracker, _ := newTestTracker(zones)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		radius  float64
		enabled bool
		wantErr error
	}{
		{"valid", "1", 500, true, nil},
		{"min radius", "1", 50, true, nil},
		{"max radius", "1", 2000, false, nil},
		{"zero radius while enabled", "1", 0, true, domain.ErrInvalidRadius},
		{"below minimum", "1", 40, true, domain.ErrInvalidRadius},
		{"above maximum", "1", 2050, true, domain.ErrInvalidRadius},
		{"off step", "1", 175, true, domain.ErrInvalidRadius},
		{"off step while disabling", "1", 175, false, nil},
		{"zero radius while disabling", "1", 0, false, nil},
		{"unknown zone", "missing", 200, true, domain.ErrZoneNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tracker.UpdateZone(ctx, tt.id, tt.radius, tt.enabled)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateZone() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateZone_TriggersEvaluation(t *testing.T) {
	zones := []domain.SafeZone{{
		ID: "1", Name: "Home", Lat: 40.7128, Lng: -74.0060,
		Type: domain.ZoneHome, RadiusMeters: 200, Enabled: false,
	}}
	tracker, st := newTestTracker(zones)
	ctx := context.Background()

	// move outside the disabled zone: no alert
	tracker.UpdatePosition(ctx, domain.Position{Lat: 40.7198, Lng: -74.0060})
	if len(st.List()) != 0 {
		t.Fatalf("disabled zone: expected 0 alerts, got %d", len(st.List()))
	}

	// enabling the zone evaluates immediately against the current position
	if err := tracker.UpdateZone(ctx, "1", 200, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.List()) != 1 {
		t.Fatalf("expected 1 alert after enabling, got %d", len(st.List()))
	}
}

func TestTrail_CappedAt50(t *testing.T) {
	tracker, _ := newTestTracker(nil)
	tracker.SetTrailEnabled(true)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		tracker.UpdatePosition(ctx, domain.Position{Lat: 40.0 + float64(i)*0.0001, Lng: -74.0})
	}

	snap := tracker.Snapshot()
	if len(snap.Trail) != 50 {
		t.Fatalf("expected trail capped at 50, got %d", len(snap.Trail))
	}
	// oldest retained point is the 11th update
	if snap.Trail[0].Lat != 40.0+10*0.0001 {
		t.Errorf("expected oldest point lat %f, got %f", 40.0+10*0.0001, snap.Trail[0].Lat)
	}
	if snap.Trail[49] != snap.Position {
		t.Errorf("expected newest trail point to equal current position")
	}
}

func TestTrail_DisabledClears(t *testing.T) {
	tracker, _ := newTestTracker(nil)
	ctx := context.Background()

	tracker.SetTrailEnabled(true)
	tracker.UpdatePosition(ctx, domain.Position{Lat: 40.1, Lng: -74.0})
	tracker.SetTrailEnabled(false)

	snap := tracker.Snapshot()
	if snap.TrailEnabled {
		t.Error("expected trail disabled")
	}
	if len(snap.Trail) != 0 {
		t.Errorf("expected empty trail, got %d points", len(snap.Trail))
	}
}

func TestOnUpdate_Notified(t *testing.T) {
	tracker, _ := newTestTracker(nil)

	var notified int
	tracker.SetOnUpdate(func() { notified++ })

	tracker.UpdatePosition(context.Background(), domain.Position{Lat: 40.1, Lng: -74.0})
	tracker.SetTrailEnabled(true)

	if notified != 2 {
		t.Errorf("expected 2 notifications, got %d", notified)
	}
}

func TestSnapshot_CopiesState(t *testing.T) {
	zones := []domain.SafeZone{{
		ID: "1", Name: "Home", Lat: 40.7128, Lng: -74.0060,
		Type: domain.ZoneHome, RadiusMeters: 200, Enabled: true,
	}}
	tracker, _ := newTestTracker(zones)

	snap := tracker.Snapshot()
	snap.Zones[0].RadiusMeters = 999

	if tracker.Zones()[0].RadiusMeters != 200 {
		t.Error("snapshot mutation leaked into tracker state")
	}
}
