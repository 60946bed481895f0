package handler

import (
	"net/http"
	"time"

	"github.com/shashiX07/email-service/internal/service"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SMTPConfigured bool   `json:"smtp_configured"`
	Timestamp      string `json:"timestamp"`
}

// InfoResponse describes the running service
type InfoResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Timestamp   string   `json:"timestamp"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Provider    string   `json:"provider"`
	Endpoints   []string `json:"endpoints"`
}

// Root returns service information
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Success:     true,
		Message:     "Email API Server is running",
		Timestamp:   timestamp(time.Now()),
		Version:     h.version,
		Environment: h.cfg.Environment,
		Provider:    h.mail.Provider(),
		Endpoints:   service.Endpoints,
	})
}

// Health returns the health status of the service. It never touches the
// transport; smtp_configured only reflects whether credentials are set.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Success:        true,
		Message:        "Email API Server is healthy",
		SMTPConfigured: h.cfg.SMTPConfigured(),
		Timestamp:      timestamp(time.Now()),
	})
}

// Ready returns whether the optional backing services answer
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	for _, dep := range h.deps {
		if err := dep.HealthCheck(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", dep.Name()).Msg("readiness check failed")
			http.Error(w, dep.Name()+" not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// NotFound answers every unregistered route
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found", nil)
}
