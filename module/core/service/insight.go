package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/insight"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store"
)

// FallbackInsight is returned verbatim whenever the external summary
// service fails for any reason.
const FallbackInsight = "Unable to generate safety insights at this time."

// InsightService fetches an AI-generated safety summary for the
// caregiver. It is pure decoration: a failed or slow request never
// affects alert or geofence state, and at most one request is in
// flight at a time.
type InsightService struct {
	client  insight.Client
	store   store.AlertStore
	tracker *TrackerService

	mu       sync.Mutex
	inFlight bool
	text     string
}

func NewInsightService(client insight.Client, st store.AlertStore, tracker *TrackerService) *InsightService {
	return &InsightService{
		client:  client,
		store:   st,
		tracker: tracker,
	}
}

func (s *InsightService) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Refresh requests a new summary. If a request is already outstanding
// the call collapses into it and returns the last known text.
func (s *InsightService) Refresh(ctx context.Context) string {
	s.mu.Lock()
	if s.inFlight {
		text := s.text
		s.mu.Unlock()
		return text
	}
	s.inFlight = true
	s.mu.Unlock()

	prompt := buildPrompt(s.store.Pending(), s.tracker.Position())
	summary, err := s.client.GenerateSummary(ctx, prompt)
	if err != nil {
		summary = FallbackInsight
	}

	s.mu.Lock()
	s.text = summary
	s.inFlight = false
	s.mu.Unlock()
	return summary
}

func buildPrompt(alerts []domain.Alert, pos domain.Position) string {
	var b strings.Builder
	b.WriteString("Analyze the following data for a visually impaired user and provide safety recommendations.\n")
	fmt.Fprintf(&b, "Current location: lat %.6f, lng %.6f\n", pos.Lat, pos.Lng)
	if len(alerts) == 0 {
		b.WriteString("No pending alerts.\n")
	} else {
		b.WriteString("Pending alerts:\n")
		for _, a := range alerts {
			fmt.Fprintf(&b, "- [%s/%s] %s at %s\n", a.Kind, a.Severity, a.Description, a.CreatedAt.Format("15:04:05"))
		}
	}
	b.WriteString("Provide the response as a short, encouraging summary for the caregiver.")
	return b.String()
}
