package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/auth"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/domain/holiday"
	"github.com/attend-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attend-hq/attendance-backend-go/internal/domain/office"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the measured distance so clients can show it
	var outsideErr *attendance.OutsideRadiusError
	if errors.As(err, &outsideErr) {
		BadRequest(w, "Location is outside the allowed office radius", map[string]string{
			"distance_meters": strconv.FormatFloat(outsideErr.DistanceMeters, 'f', 1, 64),
			"limit_meters":    strconv.FormatFloat(outsideErr.LimitMeters, 'f', 0, 64),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid login or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenExpired):
		Unauthorized(w, "Refresh token expired")
	case errors.Is(err, auth.ErrRefreshTokenUnknown):
		Unauthorized(w, "Unknown refresh token")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not allowed")

	// Attendance domain errors
	case attendance.IsSequenceViolation(err):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoMatchingCheckIn):
		BadRequest(w, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrUnknownKind):
		BadRequest(w, "Unknown attendance kind", nil)

	// QR code domain errors
	case errors.Is(err, qrcode.ErrInvalidOrExpiredCode):
		BadRequest(w, "Invalid or expired QR code", nil)

	// Office domain errors
	case errors.Is(err, office.ErrNoValidLocation):
		NotFound(w, "No office location configured")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on that date")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
