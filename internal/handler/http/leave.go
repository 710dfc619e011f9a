package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attend-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

type processLeaveRequest struct {
	Note *string `json:"note"`
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeCode, _, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var submitReq leave.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	submitReq.EmployeeCode = employeeCode

	resp, err := h.leaveService.Submit(r.Context(), submitReq)
	if err != nil {
		slog.Error("Submit leave service error", "error", err, "employee_code", employeeCode)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request submitted", "employee_code", employeeCode, "leave_id", resp.ID)
	response.Created(w, "Leave request submitted successfully", resp)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, h.leaveService.Approve, "Leave request approved")
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, h.leaveService.Reject, "Leave request rejected")
}

func (h *LeaveHandlerImpl) process(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id int64, processedBy string, note *string) (leave.RequestResponse, error),
	message string,
) {
	processedBy, _, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "leaveID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "leave id must be a number", nil)
		return
	}

	var processReq processLeaveRequest
	// The note body is optional.
	_ = json.NewDecoder(r.Body).Decode(&processReq)

	resp, err := fn(r.Context(), id, processedBy, processReq.Note)
	if err != nil {
		slog.Error("Process leave service error", "error", err, "leave_id", id)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request processed", "leave_id", id, "status", resp.Status, "processed_by", processedBy)
	response.SuccessWithMessage(w, message, resp)
}

// List implements LeaveHandler. Non-admins only see their own requests.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeCode, isAdmin, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter leave.ListFilter
	filter.Page, filter.Limit = parsePagination(r)

	q := r.URL.Query()

	if isAdmin {
		if v := q.Get("employee_code"); v != "" {
			code := v
			filter.EmployeeCode = &code
		}
	} else {
		if v := q.Get("employee_code"); v != "" && v != employeeCode {
			response.HandleError(w, employee.ErrUnauthorized)
			return
		}
		filter.EmployeeCode = &employeeCode
	}

	if v := q.Get("status"); v != "" {
		status := leave.Status(v)
		if status != leave.StatusPending && status != leave.StatusApproved && status != leave.StatusRejected {
			response.BadRequest(w, "status must be pending, approved, or rejected", nil)
			return
		}
		filter.Status = &status
	}

	resp, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List leaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Requests, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
	})
}
