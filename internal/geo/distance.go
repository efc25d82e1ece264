// Package geo provides great-circle distance helpers for delivery pricing and ranking.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000.0

// Distance calculates the great-circle distance between two points in meters
// using the haversine formula.
func Distance(a, b Coordinate) float64 {
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// atan2 keeps precision for near-identical points, where asin(sqrt(h)) does not.
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// MetersToKm converts a Distance result into kilometres for the fee tariff.
func MetersToKm(meters float64) float64 {
	return meters / 1000
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
