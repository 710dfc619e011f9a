package attendance

import (
	"context"
	"time"
)

// ActivityRepository is the append-only store behind the sequencer. The
// latest-activity accessor is the only state the state machine needs.
type ActivityRepository interface {
	// AcquireEmployeeLock serializes writes to one employee's activity stream
	// until the surrounding transaction ends. The sequencer reads the latest
	// activity and then appends; without the lock two concurrent requests can
	// both read the same latest row and append consecutive same-kind rows.
	AcquireEmployeeLock(ctx context.Context, employeeCode string) error

	// Append inserts a new activity record.
	Append(ctx context.Context, activity Activity) (Activity, error)

	// GetLatest returns the employee's most recent activity across all days,
	// or nil when the employee has none.
	GetLatest(ctx context.Context, employeeCode string) (*Activity, error)

	// GetLatestCheckInOn returns the most recent check-in on the given
	// calendar date, or nil when there is none. Used by the worked-hours
	// accumulator, which is same-day scoped.
	GetLatestCheckInOn(ctx context.Context, employeeCode string, date time.Time) (*Activity, error)

	// List returns activities newest first with pagination.
	List(ctx context.Context, filter ActivityFilter) ([]Activity, int64, error)
}

// WorkedHoursRepository stores the per-employee per-day running totals.
type WorkedHoursRepository interface {
	// GetForUpdate fetches the row for (employeeCode, date) with a row lock
	// when called inside a transaction, or nil when no row exists yet.
	GetForUpdate(ctx context.Context, employeeCode string, date time.Time) (*WorkedHours, error)

	// Create inserts a new daily total.
	Create(ctx context.Context, wh WorkedHours) (WorkedHours, error)

	// UpdateTotal overwrites the total of an existing row.
	UpdateTotal(ctx context.Context, id int64, total WorkHours) error

	// GetByEmployeeAndDate is the lock-free read used by reporting endpoints.
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*WorkedHours, error)
}

// AttendanceService orchestrates geofence checks, QR consumption, the
// sequencer, and worked-hours accumulation.
type AttendanceService interface {
	// Mark handles QR-based marking: geofence, code consumption, sequencing,
	// activity append, and (on check-out) worked-hours accumulation.
	Mark(ctx context.Context, req MarkRequest) (MarkResponse, error)

	// AutoAttend decides check-in/check-out/no-op purely from geolocation.
	AutoAttend(ctx context.Context, req AutoAttendRequest) (AutoAttendResponse, error)

	// CheckIn and CheckOut are the manual admin actions. They bypass the
	// geofence and QR codes but still respect the sequencer.
	CheckIn(ctx context.Context, employeeCode string) (MarkResponse, error)
	CheckOut(ctx context.Context, employeeCode string) (MarkResponse, error)

	// ListActivities returns activity history, newest first.
	ListActivities(ctx context.Context, filter ActivityFilter) (ListActivitiesResponse, error)

	// GetWorkedHours returns the accumulated total for one employee on one
	// calendar date. Days with no closed session report "0.00".
	GetWorkedHours(ctx context.Context, employeeCode string, date string) (WorkedHoursResponse, error)
}
