package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WorkHours is a duration in the legacy "H.MM" column format: the part after
// the dot is literal minutes (0-59), not a decimal fraction. "1.30" is one
// hour thirty minutes, not 1.5 hours. The format is kept as-is because stored
// rows already use it; do not treat the column as decimal hours.
type WorkHours struct {
	hours   int
	minutes int
}

// NewWorkHours builds a WorkHours value, carrying excess minutes into hours.
func NewWorkHours(hours, minutes int) WorkHours {
	total := hours*60 + minutes
	if total < 0 {
		total = 0
	}
	return WorkHours{hours: total / 60, minutes: total % 60}
}

// ParseWorkHours parses a stored "H.MM" value. The fractional digits are read
// as literal minutes, so "8.30" is 8h30m and "1.05" is 1h5m.
func ParseWorkHours(s string) (WorkHours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WorkHours{}, fmt.Errorf("empty work hours value")
	}

	whole, frac, _ := strings.Cut(s, ".")

	hours, err := strconv.Atoi(whole)
	if err != nil {
		return WorkHours{}, fmt.Errorf("invalid work hours %q: %w", s, err)
	}

	minutes := 0
	if frac != "" {
		minutes, err = strconv.Atoi(frac)
		if err != nil {
			return WorkHours{}, fmt.Errorf("invalid work hours %q: %w", s, err)
		}
	}

	return NewWorkHours(hours, minutes), nil
}

// WorkHoursFromDuration floors d to whole minutes and encodes it.
func WorkHoursFromDuration(d time.Duration) WorkHours {
	if d < 0 {
		d = 0
	}
	return NewWorkHours(0, int(d.Minutes()))
}

// Minutes returns the total minutes represented.
func (w WorkHours) Minutes() int {
	return w.hours*60 + w.minutes
}

// Add merges two totals, renormalizing minutes into [0,60).
func (w WorkHours) Add(o WorkHours) WorkHours {
	return NewWorkHours(0, w.Minutes()+o.Minutes())
}

// String renders the "H.MM" form with zero-padded minutes, e.g. "1.05".
func (w WorkHours) String() string {
	return fmt.Sprintf("%d.%02d", w.hours, w.minutes)
}
