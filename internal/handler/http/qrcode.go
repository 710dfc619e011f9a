package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/attend-hq/attendance-backend-go/internal/handler/http/response"
)

type QRCodeHandler interface {
	Issue(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type QRCodeHandlerImpl struct {
	qrCodeService qrcode.QRCodeService
}

func NewQRCodeHandler(qrCodeService qrcode.QRCodeService) QRCodeHandler {
	return &QRCodeHandlerImpl{
		qrCodeService: qrCodeService,
	}
}

// Issue implements QRCodeHandler. Issuing replaces the currently valid code
// of the same kind.
func (h *QRCodeHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	var issueReq qrcode.IssueRequest

	if err := json.NewDecoder(r.Body).Decode(&issueReq); err != nil {
		slog.Error("Issue decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := issueReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.qrCodeService.Issue(r.Context(), issueReq.Usage)
	if err != nil {
		slog.Error("Issue service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("QR code issued", "usage", resp.Usage)
	response.Created(w, "QR code issued successfully", resp)
}

// List implements QRCodeHandler.
func (h *QRCodeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter qrcode.ListFilter
	filter.Page, filter.Limit = parsePagination(r)

	q := r.URL.Query()

	if v := q.Get("usage"); v != "" {
		usage := attendance.Kind(v)
		if !usage.IsValid() {
			response.BadRequest(w, "usage must be check-in or check-out", nil)
			return
		}
		filter.Usage = &usage
	}
	filter.ValidOnly = q.Get("valid_only") == "true"

	resp, err := h.qrCodeService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List QR codes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.QRCodes, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
	})
}
