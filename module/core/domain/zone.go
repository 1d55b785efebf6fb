package domain

import "errors"

type ZoneType string

const (
	ZoneHome     ZoneType = "home"
	ZoneWork     ZoneType = "work"
	ZoneHospital ZoneType = "hospital"
	ZoneOther    ZoneType = "other"
)

// SafeZone is a caregiver-configured circular geofence. A zone with
// Enabled set must have RadiusMeters > 0; this is enforced at the
// configuration boundary so evaluation never has to re-check it.
type SafeZone struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Type         ZoneType `json:"type"`
	RadiusMeters float64  `json:"radius_meters"`
	Enabled      bool     `json:"enabled"`
}

const (
	MinZoneRadiusMeters  = 50
	MaxZoneRadiusMeters  = 2000
	ZoneRadiusStepMeters = 50
)

var (
	ErrZoneNotFound  = errors.New("zone not found")
	ErrInvalidRadius = errors.New("radius must be between 50 and 2000 in steps of 50")
)

// ValidateRadius checks the configuration-surface bounds for a geofence
// radius: 50 to 2000 meters, stepped by 50.
func ValidateRadius(radius float64) error {
	if radius < MinZoneRadiusMeters || radius > MaxZoneRadiusMeters {
		return ErrInvalidRadius
	}
	if int(radius)%ZoneRadiusStepMeters != 0 || radius != float64(int(radius)) {
		return ErrInvalidRadius
	}
	return nil
}
