package attendance

import (
	"time"
)

// Kind distinguishes whether an activity or QR code is for checking in or out.
type Kind string

const (
	KindCheckIn  Kind = "check-in"
	KindCheckOut Kind = "check-out"
)

// IsValid reports whether k is one of the two known kinds.
func (k Kind) IsValid() bool {
	return k == KindCheckIn || k == KindCheckOut
}

// Activity is an append-only attendance record. Rows are never updated or
// deleted; an employee's current state is derived from the newest row.
type Activity struct {
	ID           int64
	EmployeeCode string
	Kind         Kind
	Timestamp    time.Time
}

// WorkedHours is the running per-employee per-day total, created on the first
// check-out of the day and merged into on every subsequent one.
type WorkedHours struct {
	ID           int64
	EmployeeCode string
	Date         time.Time
	Total        WorkHours
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
