package leave

import "context"

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id int64) (Request, error)

	// UpdateStatus processes a pending request. It reports false when the
	// request was not pending anymore, keeping approval at-most-once.
	UpdateStatus(ctx context.Context, id int64, status Status, note *string, processedBy string) (bool, error)

	List(ctx context.Context, filter ListFilter) ([]Request, int64, error)
}

type LeaveService interface {
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)
	Approve(ctx context.Context, id int64, processedBy string, note *string) (RequestResponse, error)
	Reject(ctx context.Context, id int64, processedBy string, note *string) (RequestResponse, error)
	List(ctx context.Context, filter ListFilter) (ListRequestsResponse, error)
}
