package domain

import "time"

type AlertKind string

const (
	AlertSOS            AlertKind = "sos"
	AlertFall           AlertKind = "fall"
	AlertLowBattery     AlertKind = "low_battery"
	AlertGeofenceBreach AlertKind = "geofence_breach"
)

type AlertStatus string

const (
	AlertPending  AlertStatus = "pending"
	AlertResolved AlertStatus = "resolved"
)

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Alert is a safety event raised for the monitored user. Status only
// ever moves Pending -> Resolved. ZoneID is set for geofence breaches
// and is the key used for cooldown deduplication.
type Alert struct {
	ID          string        `json:"id"`
	Kind        AlertKind     `json:"kind"`
	CreatedAt   time.Time     `json:"created_at"`
	Description string        `json:"description"`
	ZoneID      string        `json:"zone_id,omitempty"`
	Lat         float64       `json:"lat"`
	Lng         float64       `json:"lng"`
	Status      AlertStatus   `json:"status"`
	Severity    AlertSeverity `json:"severity"`
}
