package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is an employee leave request. Only pending requests can be
// approved or rejected, and processing records who decided and when.
type Request struct {
	ID           int64
	EmployeeCode string
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Status       Status
	Note         *string
	ProcessedBy  *string
	ProcessedAt  *time.Time
	CreatedAt    time.Time
}
