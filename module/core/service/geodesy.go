package service

import (
	"math"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two points
// using the Haversine formula.
func DistanceMeters(a, b domain.Position) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
