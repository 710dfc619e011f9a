package holiday

import "time"

// Holiday is a company-wide non-working day, unique per calendar date.
type Holiday struct {
	ID        int64
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
