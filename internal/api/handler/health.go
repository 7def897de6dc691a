package handler

import (
	"net/http"

	"github.com/octofit/dashboard/internal/api/middleware"
	"github.com/octofit/dashboard/internal/api/response"
)

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	checker  BackendChecker
	probeURL string
	version  string
}

// NewHealthHandler creates a HealthHandler that probes probeURL on every check.
func NewHealthHandler(checker BackendChecker, probeURL, version string) *HealthHandler {
	return &HealthHandler{
		checker:  checker,
		probeURL: probeURL,
		version:  version,
	}
}

type backendStatus struct {
	Connected  bool   `json:"connected"`
	Endpoint   string `json:"endpoint"`
	StatusCode *int   `json:"statusCode"`
}

type healthData struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Backend backendStatus `json:"backend"`
}

// ServeHTTP handles the health check request. An unreachable backend degrades
// the status but the dashboard itself still answers 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	connectivity := h.checker.CheckConnectivity(r.Context(), h.probeURL)

	status := "healthy"
	if !connectivity.Connected {
		status = "degraded"
	}

	var code *int
	if connectivity.StatusCode != 0 {
		c := connectivity.StatusCode
		code = &c
	}

	response.Success(w, http.StatusOK, healthData{
		Status:  status,
		Version: h.version,
		Backend: backendStatus{
			Connected:  connectivity.Connected,
			Endpoint:   h.probeURL,
			StatusCode: code,
		},
	}, requestID)
}
