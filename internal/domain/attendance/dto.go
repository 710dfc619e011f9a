package attendance

import (
	"github.com/attend-hq/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MarkRequest is the QR-based marking payload. The employee code is taken
// from the access token by the handler, not from the client body.
type MarkRequest struct {
	EmployeeCode string  `json:"-"`
	Code         string  `json:"code"`
	Kind         Kind    `json:"kind"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be check-in or check-out",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AutoAttendRequest carries only coordinates; the action (check-in,
// check-out, or no-op) is decided from the geofence and the current state.
type AutoAttendRequest struct {
	EmployeeCode string  `json:"-"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (r *AutoAttendRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkResponse struct {
	EmployeeCode   string  `json:"employee_code"`
	Kind           Kind    `json:"kind"`
	Timestamp      string  `json:"timestamp"`
	DistanceMeters float64 `json:"distance_meters"`
	SessionHours   *string `json:"session_hours,omitempty"`
	TotalHours     *string `json:"total_hours,omitempty"`
}

// Auto-attend outcomes. The two no-op statuses are successful responses,
// not errors.
const (
	AutoCheckedIn        = "checked-in"
	AutoCheckedOut       = "checked-out"
	AutoAlreadyCheckedIn = "already checked in"
	AutoOutsideRadius    = "outside radius"
)

type AutoAttendResponse struct {
	EmployeeCode   string  `json:"employee_code"`
	Status         string  `json:"status"`
	DistanceMeters float64 `json:"distance_meters"`
	Timestamp      *string `json:"timestamp,omitempty"`
	SessionHours   *string `json:"session_hours,omitempty"`
	TotalHours     *string `json:"total_hours,omitempty"`
}

type ActivityResponse struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Kind         Kind   `json:"kind"`
	Timestamp    string `json:"timestamp"`
}

type ActivityFilter struct {
	EmployeeCode *string
	Kind         *Kind
	StartDate    *string
	EndDate      *string
	Page         int
	Limit        int
}

func (f *ActivityFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Kind != nil && !f.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be check-in or check-out",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListActivitiesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Activities []ActivityResponse `json:"activities"`
}

type WorkedHoursResponse struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	Total        string `json:"total"`
}
