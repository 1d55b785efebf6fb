package domain

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackerSnapshot is the data contract consumed by the map surface:
// current marker, optional trail (oldest first, at most 50 points) and
// the safe zones to draw as circles.
type TrackerSnapshot struct {
	Position     Position   `json:"position"`
	Trail        []Position `json:"trail"`
	TrailEnabled bool       `json:"trail_enabled"`
	Zones        []SafeZone `json:"zones"`
}
