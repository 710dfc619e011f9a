package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/domain/office"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/geo"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx database.TxManager
	attendance.ActivityRepository
	attendance.WorkedHoursRepository
	office.LocationRepository
	qrcode.QRCodeRepository
	employee.EmployeeRepository
	radiusMeters float64

	// now is replaceable in tests.
	now func() time.Time
}

func NewAttendanceService(
	tx database.TxManager,
	activityRepo attendance.ActivityRepository,
	workedHoursRepo attendance.WorkedHoursRepository,
	locationRepo office.LocationRepository,
	qrCodeRepo qrcode.QRCodeRepository,
	employeeRepo employee.EmployeeRepository,
	radiusMeters float64,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                    tx,
		ActivityRepository:    activityRepo,
		WorkedHoursRepository: workedHoursRepo,
		LocationRepository:    locationRepo,
		QRCodeRepository:      qrCodeRepo,
		EmployeeRepository:    employeeRepo,
		radiusMeters:          radiusMeters,
		now:                   time.Now,
	}
}

const timestampFormat = "2006-01-02 15:04:05"

// Mark implements attendance.AttendanceService. The whole flow runs in one
// transaction so a geofence or sequencing failure never leaves the QR code
// consumed or the activity half-written.
func (a *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	now := a.now()
	var resp attendance.MarkResponse

	err = a.tx.InTx(ctx, func(ctx context.Context) error {
		if err := a.ActivityRepository.AcquireEmployeeLock(ctx, emp.Code); err != nil {
			return err
		}

		loc, err := a.LocationRepository.GetActive(ctx)
		if err != nil {
			return err
		}

		ev := geo.Evaluate(req.Latitude, req.Longitude, loc.Latitude, loc.Longitude, a.radiusMeters)
		if !ev.Within {
			return &attendance.OutsideRadiusError{
				DistanceMeters: ev.DistanceMeters,
				LimitMeters:    a.radiusMeters,
			}
		}

		consumed, err := a.QRCodeRepository.ConsumeValid(ctx, req.Code, req.Kind)
		if err != nil {
			return err
		}
		if !consumed {
			return qrcode.ErrInvalidOrExpiredCode
		}

		if err := a.transition(ctx, emp.Code, req.Kind, now); err != nil {
			return err
		}

		resp = attendance.MarkResponse{
			EmployeeCode:   emp.Code,
			Kind:           req.Kind,
			Timestamp:      now.Format(timestampFormat),
			DistanceMeters: ev.DistanceMeters,
		}

		if req.Kind == attendance.KindCheckOut {
			session, total, err := a.recordSession(ctx, emp.Code, now)
			if err != nil {
				return err
			}
			sessionStr, totalStr := session.String(), total.String()
			resp.SessionHours = &sessionStr
			resp.TotalHours = &totalStr
		}

		return nil
	})
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	return resp, nil
}

// AutoAttend implements attendance.AttendanceService. Unlike Mark, the two
// no-op outcomes are successful responses, not errors.
func (a *AttendanceServiceImpl) AutoAttend(ctx context.Context, req attendance.AutoAttendRequest) (attendance.AutoAttendResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AutoAttendResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.AutoAttendResponse{}, err
	}

	now := a.now()
	var resp attendance.AutoAttendResponse

	err = a.tx.InTx(ctx, func(ctx context.Context) error {
		if err := a.ActivityRepository.AcquireEmployeeLock(ctx, emp.Code); err != nil {
			return err
		}

		loc, err := a.LocationRepository.GetActive(ctx)
		if err != nil {
			return err
		}

		ev := geo.Evaluate(req.Latitude, req.Longitude, loc.Latitude, loc.Longitude, a.radiusMeters)

		latest, err := a.ActivityRepository.GetLatest(ctx, emp.Code)
		if err != nil {
			return err
		}
		state := attendance.StateFromActivity(latest)

		resp = attendance.AutoAttendResponse{
			EmployeeCode:   emp.Code,
			DistanceMeters: ev.DistanceMeters,
		}

		switch {
		case ev.Within && state != attendance.StateCheckedIn:
			if err := a.transition(ctx, emp.Code, attendance.KindCheckIn, now); err != nil {
				return err
			}
			ts := now.Format(timestampFormat)
			resp.Status = attendance.AutoCheckedIn
			resp.Timestamp = &ts

		case ev.Within:
			// Still inside and already checked in: nothing to do.
			resp.Status = attendance.AutoAlreadyCheckedIn

		case state == attendance.StateCheckedIn:
			// Left the radius with an open session: close it.
			if err := a.transition(ctx, emp.Code, attendance.KindCheckOut, now); err != nil {
				return err
			}
			session, total, err := a.recordSession(ctx, emp.Code, now)
			if err != nil {
				return err
			}
			ts := now.Format(timestampFormat)
			sessionStr, totalStr := session.String(), total.String()
			resp.Status = attendance.AutoCheckedOut
			resp.Timestamp = &ts
			resp.SessionHours = &sessionStr
			resp.TotalHours = &totalStr

		default:
			resp.Status = attendance.AutoOutsideRadius
		}

		return nil
	})
	if err != nil {
		return attendance.AutoAttendResponse{}, err
	}

	return resp, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeCode string) (attendance.MarkResponse, error) {
	return a.manual(ctx, employeeCode, attendance.KindCheckIn)
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeCode string) (attendance.MarkResponse, error) {
	return a.manual(ctx, employeeCode, attendance.KindCheckOut)
}

// manual is the admin path: no geofence, no QR code, sequencer still applies.
func (a *AttendanceServiceImpl) manual(ctx context.Context, employeeCode string, kind attendance.Kind) (attendance.MarkResponse, error) {
	emp, err := a.EmployeeRepository.GetByCode(ctx, employeeCode)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	now := a.now()
	var resp attendance.MarkResponse

	err = a.tx.InTx(ctx, func(ctx context.Context) error {
		if err := a.ActivityRepository.AcquireEmployeeLock(ctx, emp.Code); err != nil {
			return err
		}

		if err := a.transition(ctx, emp.Code, kind, now); err != nil {
			return err
		}

		resp = attendance.MarkResponse{
			EmployeeCode: emp.Code,
			Kind:         kind,
			Timestamp:    now.Format(timestampFormat),
		}

		if kind == attendance.KindCheckOut {
			session, total, err := a.recordSession(ctx, emp.Code, now)
			if err != nil {
				return err
			}
			sessionStr, totalStr := session.String(), total.String()
			resp.SessionHours = &sessionStr
			resp.TotalHours = &totalStr
		}

		return nil
	})
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	return resp, nil
}

// transition checks the sequencer against the latest activity and appends the
// new one. The activity row carries the service clock's timestamp, not the
// database's, so the sequencer and the accumulator agree on time. Callers
// must hold the employee stream lock: read-then-append alone would let two
// concurrent requests both pass the sequencer check.
func (a *AttendanceServiceImpl) transition(ctx context.Context, employeeCode string, kind attendance.Kind, now time.Time) error {
	latest, err := a.ActivityRepository.GetLatest(ctx, employeeCode)
	if err != nil {
		return err
	}

	if _, err := attendance.NextState(attendance.StateFromActivity(latest), kind); err != nil {
		return err
	}

	_, err = a.ActivityRepository.Append(ctx, attendance.Activity{
		EmployeeCode: employeeCode,
		Kind:         kind,
		Timestamp:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	return nil
}

// recordSession merges the just-closed session into today's running total.
// The same-day check-in lookup is deliberately independent of the sequencer:
// the sequencer accepts a check-out against yesterday's open check-in, but
// the day total only accounts for sessions that started today.
func (a *AttendanceServiceImpl) recordSession(ctx context.Context, employeeCode string, checkoutAt time.Time) (session, total attendance.WorkHours, err error) {
	checkin, err := a.ActivityRepository.GetLatestCheckInOn(ctx, employeeCode, checkoutAt)
	if err != nil {
		return attendance.WorkHours{}, attendance.WorkHours{}, err
	}
	if checkin == nil {
		return attendance.WorkHours{}, attendance.WorkHours{}, attendance.ErrNoMatchingCheckIn
	}

	session = attendance.WorkHoursFromDuration(checkoutAt.Sub(checkin.Timestamp))

	row, err := a.WorkedHoursRepository.GetForUpdate(ctx, employeeCode, checkoutAt)
	if err != nil {
		return attendance.WorkHours{}, attendance.WorkHours{}, err
	}

	if row == nil {
		created, err := a.WorkedHoursRepository.Create(ctx, attendance.WorkedHours{
			EmployeeCode: employeeCode,
			Date:         checkoutAt,
			Total:        session,
		})
		if err != nil {
			return attendance.WorkHours{}, attendance.WorkHours{}, err
		}
		return session, created.Total, nil
	}

	total = row.Total.Add(session)
	if err := a.WorkedHoursRepository.UpdateTotal(ctx, row.ID, total); err != nil {
		return attendance.WorkHours{}, attendance.WorkHours{}, err
	}

	return session, total, nil
}

// GetWorkedHours implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWorkedHours(ctx context.Context, employeeCode string, date string) (attendance.WorkedHoursResponse, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return attendance.WorkedHoursResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, employeeCode)
	if err != nil {
		return attendance.WorkedHoursResponse{}, err
	}

	resp := attendance.WorkedHoursResponse{
		EmployeeCode: emp.Code,
		Date:         date,
		Total:        attendance.WorkHours{}.String(),
	}

	row, err := a.WorkedHoursRepository.GetByEmployeeAndDate(ctx, emp.Code, day)
	if err != nil {
		return attendance.WorkedHoursResponse{}, err
	}
	if row != nil {
		resp.Total = row.Total.String()
	}

	return resp, nil
}

// ListActivities implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListActivities(ctx context.Context, filter attendance.ActivityFilter) (attendance.ListActivitiesResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListActivitiesResponse{}, err
	}

	activities, total, err := a.ActivityRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListActivitiesResponse{}, fmt.Errorf("failed to list activities: %w", err)
	}

	responses := make([]attendance.ActivityResponse, 0, len(activities))
	for _, act := range activities {
		responses = append(responses, attendance.ActivityResponse{
			ID:           act.ID,
			EmployeeCode: act.EmployeeCode,
			Kind:         act.Kind,
			Timestamp:    act.Timestamp.Format(timestampFormat),
		})
	}

	return attendance.ListActivitiesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Activities: responses,
	}, nil
}
