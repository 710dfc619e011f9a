package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attend-hq/attendance-backend-go/internal/domain/office"
	"github.com/attend-hq/attendance-backend-go/internal/handler/http/response"
)

type OfficeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type OfficeHandlerImpl struct {
	locationService office.LocationService
}

func NewOfficeHandler(locationService office.LocationService) OfficeHandler {
	return &OfficeHandlerImpl{
		locationService: locationService,
	}
}

// Create implements OfficeHandler. The new location supersedes the previous
// one.
func (h *OfficeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq office.CreateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create office decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.locationService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Office location created", "latitude", resp.Latitude, "longitude", resp.Longitude)
	response.Created(w, "Office location created successfully", resp)
}

// GetActive implements OfficeHandler.
func (h *OfficeHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	resp, err := h.locationService.GetActive(r.Context())
	if err != nil {
		slog.Error("GetActive office service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements OfficeHandler.
func (h *OfficeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.locationService.List(r.Context())
	if err != nil {
		slog.Error("List offices service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
