package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	officeLat = -6.175392
	officeLon = 106.827153
)

func TestDistance_ZeroForSamePoint(t *testing.T) {
	d := Distance(officeLat, officeLon, officeLat, officeLon)
	assert.InDelta(t, 0, d, 1e-9)
}

func TestDistance_Symmetric(t *testing.T) {
	lat2, lon2 := officeLat+0.01, officeLon-0.02

	d1 := Distance(officeLat, officeLon, lat2, lon2)
	d2 := Distance(lat2, lon2, officeLat, officeLon)

	assert.InDelta(t, d1, d2, 1e-6)
	assert.Greater(t, d1, 0.0)
}

func TestDistance_KnownOffset(t *testing.T) {
	// 0.0022481 degrees of latitude is ~250 meters at the equatorial radius
	// used by the formula.
	d := Distance(officeLat, officeLon, officeLat+0.0022481, officeLon)
	assert.InDelta(t, 250, d, 1.0)
}

func TestEvaluate_WithinRadius(t *testing.T) {
	// ~100 meters north of the office.
	ev := Evaluate(officeLat+0.0009, officeLon, officeLat, officeLon, 200)

	assert.True(t, ev.Within)
	assert.InDelta(t, 100, ev.DistanceMeters, 2.0)
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	// ~250 meters north of the office, 200 meter fence.
	ev := Evaluate(officeLat+0.0022481, officeLon, officeLat, officeLon, 200)

	assert.False(t, ev.Within)
	assert.InDelta(t, 250, ev.DistanceMeters, 1.0)
}

func TestEvaluate_BoundaryIsWithin(t *testing.T) {
	d := Distance(officeLat, officeLon, officeLat+0.0009, officeLon)
	ev := Evaluate(officeLat+0.0009, officeLon, officeLat, officeLon, d)

	assert.True(t, ev.Within)
}
