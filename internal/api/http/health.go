package http

import (
	"net/http"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/api/respond"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/health"
)

// HealthReporter is satisfied by health.ServiceHealthChecker.
type HealthReporter interface {
	Snapshot() health.Status
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Components map[string]bool `json:"components,omitempty"`
	Since      strfmt.DateTime `json:"since"`
	Timestamp  strfmt.DateTime `json:"timestamp"`
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	reporter HealthReporter
	now      func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reporter HealthReporter) *HealthHandler {
	return &HealthHandler{reporter: reporter, now: time.Now}
}

// CheckHealth handles GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	st := h.reporter.Snapshot()
	resp := HealthResponse{
		Status:     "UP",
		Message:    "Service is healthy",
		Components: st.Components,
		Since:      strfmt.DateTime(st.Since.UTC()),
		Timestamp:  strfmt.DateTime(h.now().UTC()),
	}
	if !st.Healthy {
		resp.Status = "DOWN"
		resp.Message = "One or more dependencies unavailable"
		respond.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}
