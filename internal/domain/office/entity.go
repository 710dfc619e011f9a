package office

import "time"

// Location is an office reference point for the geofence. At most one
// location is valid at a time; creating a new one invalidates all others in
// the same transaction.
type Location struct {
	ID        int64
	Latitude  float64
	Longitude float64
	IsValid   bool
	CreatedAt time.Time
}
