package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store/memory"
)

type mockInsightClient struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	calls      atomic.Int64
}

func (m *mockInsightClient) GenerateSummary(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	return m.generateFn(ctx, prompt)
}

func newTestInsight(client *mockInsightClient) (*InsightService, *memory.AlertStore, *TrackerService) {
	st := memory.NewAlertStore()
	tracker := NewTrackerService(
		domain.Position{Lat: 40.7128, Lng: -74.0060},
		nil,
		NewGeofenceService(st, &mockAlertPublisher{}),
	)
	return NewInsightService(client, st, tracker), st, tracker
}

func TestRefresh_Success(t *testing.T) {
	client := &mockInsightClient{
		generateFn: func(_ context.Context, prompt string) (string, error) {
			if !strings.Contains(prompt, "40.712800") {
				t.Errorf("expected prompt to carry the position, got: %s", prompt)
			}
			return "All clear today.", nil
		},
	}
	svc, _, _ := newTestInsight(client)

	got := svc.Refresh(context.Background())
	if got != "All clear today." {
		t.Errorf("expected summary, got %q", got)
	}
	if svc.Current() != "All clear today." {
		t.Errorf("expected Current to return last summary")
	}
}

func TestRefresh_FailureYieldsFallback(t *testing.T) {
	client := &mockInsightClient{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("network error")
		},
	}
	svc, st, _ := newTestInsight(client)
	st.Append(domain.Alert{ID: "a", Kind: domain.AlertSOS, Status: domain.AlertPending})

	got := svc.Refresh(context.Background())
	if got != "Unable to generate safety insights at this time." {
		t.Errorf("expected fallback string, got %q", got)
	}

	// a failed insight request never touches alert state
	if len(st.List()) != 1 || st.List()[0].Status != domain.AlertPending {
		t.Error("insight failure altered the alert store")
	}
}

func TestRefresh_SingleInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := &mockInsightClient{
		generateFn: func(_ context.Context, _ string) (string, error) {
			close(started)
			<-release
			return "slow summary", nil
		},
	}
	svc, _, _ := newTestInsight(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.Refresh(context.Background())
	}()

	// wait until the first request is in flight
	<-started

	// overlapping refresh collapses instead of issuing a second request
	if got := svc.Refresh(context.Background()); got != "" {
		t.Errorf("expected cached (empty) text while in flight, got %q", got)
	}
	if client.calls.Load() != 1 {
		t.Errorf("expected 1 request, got %d", client.calls.Load())
	}

	close(release)
	wg.Wait()

	if svc.Current() != "slow summary" {
		t.Errorf("expected summary after completion, got %q", svc.Current())
	}
}

func TestBuildPrompt_IncludesPendingAlerts(t *testing.T) {
	alerts := []domain.Alert{
		{Kind: domain.AlertGeofenceBreach, Severity: domain.SeverityCritical, Description: "Exited safe zone: Home"},
	}
	prompt := buildPrompt(alerts, domain.Position{Lat: 40.7128, Lng: -74.0060})

	if !strings.Contains(prompt, "Exited safe zone: Home") {
		t.Errorf("expected alert description in prompt, got: %s", prompt)
	}
	if !strings.Contains(prompt, "geofence_breach") {
		t.Errorf("expected alert kind in prompt, got: %s", prompt)
	}
}
