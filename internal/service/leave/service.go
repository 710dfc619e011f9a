package leave

import (
	"context"
	"fmt"

	"github.com/attend-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.RequestRepository
}

func NewLeaveService(requestRepo leave.RequestRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		RequestRepository: requestRepo,
	}
}

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"
)

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.RequestRepository.Create(ctx, leave.Request{
		EmployeeCode: req.EmployeeCode,
		StartDate:    start,
		EndDate:      end,
		Reason:       req.Reason,
		Status:       leave.StatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id int64, processedBy string, note *string) (leave.RequestResponse, error) {
	return s.process(ctx, id, leave.StatusApproved, processedBy, note)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id int64, processedBy string, note *string) (leave.RequestResponse, error) {
	return s.process(ctx, id, leave.StatusRejected, processedBy, note)
}

func (s *LeaveServiceImpl) process(ctx context.Context, id int64, status leave.Status, processedBy string, note *string) (leave.RequestResponse, error) {
	processed, err := s.RequestRepository.UpdateStatus(ctx, id, status, note, processedBy)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !processed {
		// The row exists but was no longer pending, or never existed.
		// Fetch to tell the two apart.
		if _, err := s.RequestRepository.GetByID(ctx, id); err != nil {
			return leave.RequestResponse{}, err
		}
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}

	updated, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) (leave.ListRequestsResponse, error) {
	requests, total, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapRequestToResponse(req))
	}

	return leave.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

func mapRequestToResponse(req leave.Request) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:           req.ID,
		EmployeeCode: req.EmployeeCode,
		StartDate:    req.StartDate.Format(dateFormat),
		EndDate:      req.EndDate.Format(dateFormat),
		Reason:       req.Reason,
		Status:       req.Status,
		Note:         req.Note,
		ProcessedBy:  req.ProcessedBy,
		CreatedAt:    req.CreatedAt.Format(timestampFormat),
	}

	if req.ProcessedAt != nil {
		processedAt := req.ProcessedAt.Format(timestampFormat)
		resp.ProcessedAt = &processedAt
	}

	return resp
}
