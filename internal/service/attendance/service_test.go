package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/domain/office"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The transaction manager is a pass-through since these
// tests exercise orchestration logic, not rollback behavior.

type fakeTx struct{}

func (fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeActivityRepo struct {
	activities []attendance.Activity
	nextID     int64
	locked     []string
}

func (f *fakeActivityRepo) AcquireEmployeeLock(_ context.Context, employeeCode string) error {
	f.locked = append(f.locked, employeeCode)
	return nil
}

func (f *fakeActivityRepo) Append(_ context.Context, a attendance.Activity) (attendance.Activity, error) {
	f.nextID++
	a.ID = f.nextID
	f.activities = append(f.activities, a)
	return a, nil
}

func (f *fakeActivityRepo) GetLatest(_ context.Context, employeeCode string) (*attendance.Activity, error) {
	for i := len(f.activities) - 1; i >= 0; i-- {
		if f.activities[i].EmployeeCode == employeeCode {
			a := f.activities[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeActivityRepo) GetLatestCheckInOn(_ context.Context, employeeCode string, date time.Time) (*attendance.Activity, error) {
	y, m, d := date.Date()
	for i := len(f.activities) - 1; i >= 0; i-- {
		a := f.activities[i]
		ay, am, ad := a.Timestamp.Date()
		if a.EmployeeCode == employeeCode && a.Kind == attendance.KindCheckIn && ay == y && am == m && ad == d {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeActivityRepo) List(_ context.Context, filter attendance.ActivityFilter) ([]attendance.Activity, int64, error) {
	var out []attendance.Activity
	for i := len(f.activities) - 1; i >= 0; i-- {
		a := f.activities[i]
		if filter.EmployeeCode != nil && a.EmployeeCode != *filter.EmployeeCode {
			continue
		}
		if filter.Kind != nil && a.Kind != *filter.Kind {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type fakeWorkedHoursRepo struct {
	rows   []attendance.WorkedHours
	nextID int64
}

func (f *fakeWorkedHoursRepo) find(employeeCode string, date time.Time) *attendance.WorkedHours {
	y, m, d := date.Date()
	for i := range f.rows {
		ry, rm, rd := f.rows[i].Date.Date()
		if f.rows[i].EmployeeCode == employeeCode && ry == y && rm == m && rd == d {
			return &f.rows[i]
		}
	}
	return nil
}

func (f *fakeWorkedHoursRepo) GetForUpdate(_ context.Context, employeeCode string, date time.Time) (*attendance.WorkedHours, error) {
	if row := f.find(employeeCode, date); row != nil {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWorkedHoursRepo) GetByEmployeeAndDate(_ context.Context, employeeCode string, date time.Time) (*attendance.WorkedHours, error) {
	if row := f.find(employeeCode, date); row != nil {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWorkedHoursRepo) Create(_ context.Context, wh attendance.WorkedHours) (attendance.WorkedHours, error) {
	f.nextID++
	wh.ID = f.nextID
	f.rows = append(f.rows, wh)
	return wh, nil
}

func (f *fakeWorkedHoursRepo) UpdateTotal(_ context.Context, id int64, total attendance.WorkHours) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Total = total
			return nil
		}
	}
	return errors.New("worked hours row not found")
}

type fakeLocationRepo struct {
	loc    office.Location
	hasLoc bool
}

func (f *fakeLocationRepo) AcquireCreateLock(context.Context) error { return nil }

func (f *fakeLocationRepo) Create(_ context.Context, loc office.Location) (office.Location, error) {
	f.loc = loc
	f.loc.IsValid = true
	f.hasLoc = true
	return f.loc, nil
}

func (f *fakeLocationRepo) InvalidateAll(context.Context) error {
	f.hasLoc = false
	return nil
}

func (f *fakeLocationRepo) GetActive(context.Context) (office.Location, error) {
	if !f.hasLoc {
		return office.Location{}, office.ErrNoValidLocation
	}
	return f.loc, nil
}

func (f *fakeLocationRepo) List(context.Context) ([]office.Location, error) {
	if !f.hasLoc {
		return nil, nil
	}
	return []office.Location{f.loc}, nil
}

type fakeQRCodeRepo struct {
	codes  []qrcode.QRCode
	nextID int64
}

func (f *fakeQRCodeRepo) AcquireIssueLock(context.Context, attendance.Kind) error { return nil }

func (f *fakeQRCodeRepo) Create(_ context.Context, code qrcode.QRCode) (qrcode.QRCode, error) {
	f.nextID++
	code.ID = f.nextID
	code.IsValid = true
	f.codes = append(f.codes, code)
	return code, nil
}

func (f *fakeQRCodeRepo) InvalidateAllByUsage(_ context.Context, usage attendance.Kind) error {
	for i := range f.codes {
		if f.codes[i].Usage == usage {
			f.codes[i].IsValid = false
		}
	}
	return nil
}

func (f *fakeQRCodeRepo) ConsumeValid(_ context.Context, token string, usage attendance.Kind) (bool, error) {
	for i := range f.codes {
		if f.codes[i].Token == token && f.codes[i].Usage == usage && f.codes[i].IsValid {
			f.codes[i].IsValid = false
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQRCodeRepo) TokenExists(_ context.Context, token string) (bool, error) {
	for i := range f.codes {
		if f.codes[i].Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQRCodeRepo) List(_ context.Context, _ qrcode.ListFilter) ([]qrcode.QRCode, int64, error) {
	return f.codes, int64(len(f.codes)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.Code] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	emp, ok := f.employees[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByLogin(ctx context.Context, login string) (employee.Employee, error) {
	return f.GetByCode(ctx, login)
}

func (f *fakeEmployeeRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (f *fakeEmployeeRepo) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

func (f *fakeEmployeeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := f.employees[code]
	return ok, nil
}

func (f *fakeEmployeeRepo) List(context.Context, employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

// Test fixture. The office sits at (1.0, 1.0); 0.0009 degrees of latitude is
// about 100 m and 0.0022481 degrees about 250 m.
const (
	officeLat = 1.0
	officeLon = 1.0

	nearbyLat = officeLat + 0.0009
	farLat    = officeLat + 0.0022481

	testRadius = 200.0
)

type fixture struct {
	svc        *AttendanceServiceImpl
	activities *fakeActivityRepo
	hours      *fakeWorkedHoursRepo
	locations  *fakeLocationRepo
	qrCodes    *fakeQRCodeRepo
	clock      *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	activities := &fakeActivityRepo{}
	hours := &fakeWorkedHoursRepo{}
	locations := &fakeLocationRepo{
		loc:    office.Location{ID: 1, Latitude: officeLat, Longitude: officeLon, IsValid: true},
		hasLoc: true,
	}
	qrCodes := &fakeQRCodeRepo{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"EMP1A2": {ID: 1, Code: "EMP1A2", Email: "one@example.com", IsActive: true},
		"EMP3B4": {ID: 2, Code: "EMP3B4", Email: "two@example.com", IsActive: true},
	}}

	svc := NewAttendanceService(fakeTx{}, activities, hours, locations, qrCodes, employees, testRadius).(*AttendanceServiceImpl)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := &now
	svc.now = func() time.Time { return *clock }

	return &fixture{
		svc:        svc,
		activities: activities,
		hours:      hours,
		locations:  locations,
		qrCodes:    qrCodes,
		clock:      clock,
	}
}

func (f *fixture) issueCode(t *testing.T, token string, usage attendance.Kind) {
	t.Helper()
	_, err := f.qrCodes.Create(context.Background(), qrcode.QRCode{Token: token, Usage: usage})
	require.NoError(t, err)
}

func TestMarkCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-in", attendance.KindCheckIn)

	resp, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP1A2", resp.EmployeeCode)
	assert.Equal(t, attendance.KindCheckIn, resp.Kind)
	assert.Equal(t, "2026-03-02 09:00:00", resp.Timestamp)
	assert.InDelta(t, 0, resp.DistanceMeters, 0.001)
	assert.Nil(t, resp.SessionHours)

	require.Len(t, f.activities.activities, 1)
	assert.Equal(t, attendance.KindCheckIn, f.activities.activities[0].Kind)

	// The code was consumed.
	assert.False(t, f.qrCodes.codes[0].IsValid)
}

func TestMarkOutsideRadius(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-in", attendance.KindCheckIn)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     farLat,
		Longitude:    officeLon,
	})

	var outsideErr *attendance.OutsideRadiusError
	require.ErrorAs(t, err, &outsideErr)
	assert.InDelta(t, 250, outsideErr.DistanceMeters, 1.0)
	assert.Equal(t, testRadius, outsideErr.LimitMeters)

	// Geofence rejection happens before code consumption and before any
	// activity write.
	assert.True(t, f.qrCodes.codes[0].IsValid)
	assert.Empty(t, f.activities.activities)
}

func TestMarkNearBoundaryStillWithin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-in", attendance.KindCheckIn)

	resp, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     nearbyLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, resp.DistanceMeters, 1.0)
}

func TestMarkCodeSingleUse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-in", attendance.KindCheckIn)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	// A second employee scanning the same token is rejected.
	_, err = f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP3B4",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	assert.ErrorIs(t, err, qrcode.ErrInvalidOrExpiredCode)
}

func TestMarkWrongKindCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-out", attendance.KindCheckOut)

	// A check-out token cannot be used to check in.
	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-out",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	assert.ErrorIs(t, err, qrcode.ErrInvalidOrExpiredCode)
}

func TestMarkSequenceViolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-1", attendance.KindCheckIn)
	f.issueCode(t, "tok-2", attendance.KindCheckIn)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-1",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	_, err = f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-2",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedOut)
}

func TestMarkCheckOutAccumulatesHours(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-in", attendance.KindCheckIn)
	f.issueCode(t, "tok-out", attendance.KindCheckOut)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	*f.clock = time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)

	resp, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-out",
		Kind:         attendance.KindCheckOut,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.SessionHours)
	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, "8.30", *resp.SessionHours)
	assert.Equal(t, "8.30", *resp.TotalHours)
}

func TestMultipleSessionsMergeIntoDayTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Morning session, 09:00 to 12:00.
	_, err := f.svc.CheckIn(ctx, "EMP1A2")
	require.NoError(t, err)

	*f.clock = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	resp, err := f.svc.CheckOut(ctx, "EMP1A2")
	require.NoError(t, err)
	assert.Equal(t, "3.00", *resp.TotalHours)

	// Afternoon session, 13:00 to 15:30.
	*f.clock = time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	_, err = f.svc.CheckIn(ctx, "EMP1A2")
	require.NoError(t, err)

	*f.clock = time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	resp, err = f.svc.CheckOut(ctx, "EMP1A2")
	require.NoError(t, err)

	assert.Equal(t, "2.30", *resp.SessionHours)
	assert.Equal(t, "5.30", *resp.TotalHours)

	// One row per employee per day.
	require.Len(t, f.hours.rows, 1)
}

func TestCheckOutAfterMidnightFindsNoSameDayCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Open a session late in the evening.
	*f.clock = time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	_, err := f.svc.CheckIn(ctx, "EMP1A2")
	require.NoError(t, err)

	// The next morning the sequencer still accepts the check-out, but the
	// accumulator only counts sessions that started the same day.
	*f.clock = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	_, err = f.svc.CheckOut(ctx, "EMP1A2")
	assert.ErrorIs(t, err, attendance.ErrNoMatchingCheckIn)
	assert.Empty(t, f.hours.rows)
}

func TestEveryWriteFlowLocksEmployeeStream(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issueCode(t, "tok-in", attendance.KindCheckIn)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, "EMP1A2")
	require.NoError(t, err)

	_, err = f.svc.AutoAttend(ctx, attendance.AutoAttendRequest{
		EmployeeCode: "EMP1A2",
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"EMP1A2", "EMP1A2", "EMP1A2"}, f.activities.locked)
}

func TestManualCheckOutWithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CheckOut(ctx, "EMP1A2")
	assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)
}

func TestManualCheckInUnknownEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CheckIn(ctx, "EMP999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAutoAttendChecksIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.AutoAttend(ctx, attendance.AutoAttendRequest{
		EmployeeCode: "EMP1A2",
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.AutoCheckedIn, resp.Status)
	require.NotNil(t, resp.Timestamp)
	require.Len(t, f.activities.activities, 1)
}

func TestAutoAttendAlreadyCheckedIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CheckIn(ctx, "EMP1A2")
	require.NoError(t, err)

	resp, err := f.svc.AutoAttend(ctx, attendance.AutoAttendRequest{
		EmployeeCode: "EMP1A2",
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.AutoAlreadyCheckedIn, resp.Status)
	// No new activity was written.
	require.Len(t, f.activities.activities, 1)
}

func TestAutoAttendChecksOutWhenLeaving(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CheckIn(ctx, "EMP1A2")
	require.NoError(t, err)

	*f.clock = time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

	resp, err := f.svc.AutoAttend(ctx, attendance.AutoAttendRequest{
		EmployeeCode: "EMP1A2",
		Latitude:     farLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.AutoCheckedOut, resp.Status)
	require.NotNil(t, resp.SessionHours)
	assert.Equal(t, "8.00", *resp.SessionHours)
}

func TestAutoAttendOutsideRadiusNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.AutoAttend(ctx, attendance.AutoAttendRequest{
		EmployeeCode: "EMP1A2",
		Latitude:     farLat,
		Longitude:    officeLon,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.AutoOutsideRadius, resp.Status)
	assert.Nil(t, resp.Timestamp)
	assert.Empty(t, f.activities.activities)
}

func TestMarkNoOfficeConfigured(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.locations.hasLoc = false
	f.issueCode(t, "tok-in", attendance.KindCheckIn)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{
		EmployeeCode: "EMP1A2",
		Code:         "tok-in",
		Kind:         attendance.KindCheckIn,
		Latitude:     officeLat,
		Longitude:    officeLon,
	})
	assert.ErrorIs(t, err, office.ErrNoValidLocation)
}

func TestGetWorkedHours(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// No closed session yet reports a zero total.
	resp, err := f.svc.GetWorkedHours(ctx, "EMP1A2", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.Total)

	_, err = f.svc.CheckIn(ctx, "EMP1A2")
	require.NoError(t, err)
	*f.clock = time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC)
	_, err = f.svc.CheckOut(ctx, "EMP1A2")
	require.NoError(t, err)

	resp, err = f.svc.GetWorkedHours(ctx, "EMP1A2", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "1.15", resp.Total)
}
