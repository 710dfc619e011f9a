package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Sequence violations
	ErrNotCheckedOut  = errors.New("not checked out")
	ErrNoCheckInFound = errors.New("no check-in found")
	ErrNotCheckedIn   = errors.New("not checked in")
	ErrUnknownKind    = errors.New("unknown activity kind")

	// Worked-hours accumulation
	ErrNoMatchingCheckIn = errors.New("no matching check-in found for today")
)

var sequenceErrors = []error{ErrNotCheckedOut, ErrNoCheckInFound, ErrNotCheckedIn}

// IsSequenceViolation reports whether err is one of the ordering errors.
func IsSequenceViolation(err error) bool {
	for _, seqErr := range sequenceErrors {
		if errors.Is(err, seqErr) {
			return true
		}
	}
	return false
}

// OutsideRadiusError is returned when a coordinate falls outside the office
// geofence. It carries the computed distance so clients can show how far off
// the employee was.
type OutsideRadiusError struct {
	DistanceMeters float64
	LimitMeters    float64
}

func (e *OutsideRadiusError) Error() string {
	return fmt.Sprintf("you are %.0f meters from the office, outside the allowed %.0f meter radius", e.DistanceMeters, e.LimitMeters)
}
