package qrcode

import (
	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/validator"
)

type IssueRequest struct {
	Usage attendance.Kind `json:"usage"`
}

func (r *IssueRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Usage.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "usage",
			Message: "usage must be check-in or check-out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type QRCodeResponse struct {
	ID        int64           `json:"id"`
	Token     string          `json:"token"`
	Usage     attendance.Kind `json:"usage"`
	IsValid   bool            `json:"is_valid"`
	CreatedAt string          `json:"created_at"`
}

type ListFilter struct {
	Usage     *attendance.Kind
	ValidOnly bool
	Page      int
	Limit     int
}

type ListQRCodesResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	QRCodes    []QRCodeResponse `json:"qr_codes"`
}
