package handler

import (
	"net/http"

	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/service"
)

// DetectHandler handles HTTP requests for password field detection.
type DetectHandler struct {
	service *service.DetectService
	maxBody int64
}

// NewDetectHandler creates a new DetectHandler.
func NewDetectHandler(svc *service.DetectService, maxBody int64) *DetectHandler {
	return &DetectHandler{service: svc, maxBody: maxBody}
}

// HandleDetect handles POST /api/v1/detect requests.
func (h *DetectHandler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	var req model.DetectRequest
	if !decodeJSON(w, r, h.maxBody, &req) {
		return
	}

	resp, err := h.service.Detect(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
