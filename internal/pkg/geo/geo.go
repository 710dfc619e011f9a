package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the Haversine formula.
const earthRadiusMeters = 6371000

// Evaluation is the result of checking a coordinate against a geofence.
type Evaluation struct {
	DistanceMeters float64
	Within         bool
}

// Distance returns the great-circle distance between two coordinates in meters.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Evaluate classifies a coordinate as inside or outside a circular geofence
// centered on (centerLat, centerLon) with the given radius in meters.
func Evaluate(lat, lon, centerLat, centerLon, radiusMeters float64) Evaluation {
	d := Distance(lat, lon, centerLat, centerLon)
	return Evaluation{
		DistanceMeters: d,
		Within:         d <= radiusMeters,
	}
}
