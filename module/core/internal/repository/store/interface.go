package store

import (
	"time"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

// AlertStore holds the session's alert records. Reads are always
// ordered newest-first. Alerts are never deleted within a session.
type AlertStore interface {
	Append(alert domain.Alert)
	// Resolve moves a pending alert to resolved. It reports whether a
	// transition happened; unknown ids and already-resolved alerts are
	// a no-op, not an error.
	Resolve(id string) bool
	List() []domain.Alert
	Pending() []domain.Alert
	// FindRecent returns the newest pending alert of the given kind
	// created at or after since. A non-empty zoneID restricts the match
	// to alerts carrying that zone id.
	FindRecent(kind domain.AlertKind, zoneID string, since time.Time) *domain.Alert
}
