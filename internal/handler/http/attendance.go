package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	AutoAttend(w http.ResponseWriter, r *http.Request)
	ListActivities(w http.ResponseWriter, r *http.Request)
	GetWorkedHours(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Mark implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	employeeCode, _, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var markReq attendance.MarkRequest

	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("Mark decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	markReq.EmployeeCode = employeeCode

	resp, err := a.attendanceService.Mark(r.Context(), markReq)
	if err != nil {
		slog.Error("Mark service error", "error", err, "employee_code", employeeCode)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance marked", "employee_code", employeeCode, "kind", resp.Kind)
	response.Success(w, resp)
}

// AutoAttend implements AttendanceHandler.
func (a *AttendanceHandlerImpl) AutoAttend(w http.ResponseWriter, r *http.Request) {
	employeeCode, _, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var autoReq attendance.AutoAttendRequest

	if err := json.NewDecoder(r.Body).Decode(&autoReq); err != nil {
		slog.Error("AutoAttend decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	autoReq.EmployeeCode = employeeCode

	resp, err := a.attendanceService.AutoAttend(r.Context(), autoReq)
	if err != nil {
		slog.Error("AutoAttend service error", "error", err, "employee_code", employeeCode)
		response.HandleError(w, err)
		return
	}

	slog.Info("Auto attendance evaluated", "employee_code", employeeCode, "status", resp.Status)
	response.Success(w, resp)
}

// ListActivities implements AttendanceHandler. Non-admins only see their own
// history; admins may pass ?employee_code= to inspect anyone's.
func (a *AttendanceHandlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	employeeCode, isAdmin, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.ActivityFilter{
		EmployeeCode: &employeeCode,
	}
	filter.Page, filter.Limit = parsePagination(r)

	q := r.URL.Query()

	if v := q.Get("employee_code"); v != "" && v != employeeCode {
		if !isAdmin {
			response.HandleError(w, employee.ErrUnauthorized)
			return
		}
		code := v
		filter.EmployeeCode = &code
	}

	if v := q.Get("kind"); v != "" {
		kind := attendance.Kind(v)
		filter.Kind = &kind
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	resp, err := a.attendanceService.ListActivities(r.Context(), filter)
	if err != nil {
		slog.Error("ListActivities service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Activities, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
	})
}

// GetWorkedHours implements AttendanceHandler. Defaults to today when no
// ?date= is given. Same admin override as ListActivities.
func (a *AttendanceHandlerImpl) GetWorkedHours(w http.ResponseWriter, r *http.Request) {
	employeeCode, isAdmin, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()

	if v := q.Get("employee_code"); v != "" && v != employeeCode {
		if !isAdmin {
			response.HandleError(w, employee.ErrUnauthorized)
			return
		}
		employeeCode = v
	}

	date := q.Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	resp, err := a.attendanceService.GetWorkedHours(r.Context(), employeeCode, date)
	if err != nil {
		slog.Error("GetWorkedHours service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// CheckIn implements AttendanceHandler. Admin-only manual check-in.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeCode := chi.URLParam(r, "employeeCode")

	resp, err := a.attendanceService.CheckIn(r.Context(), employeeCode)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "employee_code", employeeCode)
		response.HandleError(w, err)
		return
	}

	slog.Info("Manual check-in recorded", "employee_code", employeeCode)
	response.Success(w, resp)
}

// CheckOut implements AttendanceHandler. Admin-only manual check-out.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeCode := chi.URLParam(r, "employeeCode")

	resp, err := a.attendanceService.CheckOut(r.Context(), employeeCode)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "employee_code", employeeCode)
		response.HandleError(w, err)
		return
	}

	slog.Info("Manual check-out recorded", "employee_code", employeeCode)
	response.Success(w, resp)
}
