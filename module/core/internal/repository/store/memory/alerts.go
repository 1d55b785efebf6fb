package memory

import (
	"sync"
	"time"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
	"github.com/SAMSON5319x/visionguard/module/core/internal/repository/store"
)

var _ store.AlertStore = (*AlertStore)(nil)

// AlertStore is the in-memory alert repository. The mutex covers access
// from HTTP handlers, the telemetry subscriber and the simulator loop.
type AlertStore struct {
	mu     sync.Mutex
	alerts []domain.Alert
}

func NewAlertStore() *AlertStore {
	return &AlertStore{}
}

func (s *AlertStore) Append(alert domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append([]domain.Alert{alert}, s.alerts...)
}

func (s *AlertStore) Resolve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			if s.alerts[i].Status != domain.AlertPending {
				return false
			}
			s.alerts[i].Status = domain.AlertResolved
			return true
		}
	}
	return false
}

func (s *AlertStore) List() []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

func (s *AlertStore) Pending() []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Alert
	for _, a := range s.alerts {
		if a.Status == domain.AlertPending {
			out = append(out, a)
		}
	}
	return out
}

func (s *AlertStore) FindRecent(kind domain.AlertKind, zoneID string, since time.Time) *domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	// alerts are newest-first, so the first match is the newest
	for i := range s.alerts {
		a := s.alerts[i]
		if a.Kind != kind || a.Status != domain.AlertPending {
			continue
		}
		if zoneID != "" && a.ZoneID != zoneID {
			continue
		}
		if a.CreatedAt.Before(since) {
			continue
		}
		match := a
		return &match
	}
	return nil
}
