package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shashiX07/email-service/internal/email"
	"github.com/shashiX07/email-service/internal/middleware"
	"github.com/shashiX07/email-service/internal/validation"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

// errInvalidJSON is reported for bodies that cannot be decoded
var errInvalidJSON = errors.New("Invalid JSON body")

// SuccessResponse is returned by every successful operation
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is returned by every failed operation
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, details interface{}) {
	writeJSON(w, status, ErrorResponse{Error: message, Details: details})
}

func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errInvalidJSON
	}
	defer r.Body.Close()

	limit := h.cfg.Server.MaxBodyBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit)).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.New("Request body too large")
		}
		return errInvalidJSON
	}
	return nil
}

// writeServiceError maps a service failure onto the error taxonomy.
// Transport diagnostics are only exposed outside production.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error(), verr.Fields())
		return
	}

	var derr *email.DeliveryError
	if errors.As(err, &derr) {
		var details interface{}
		if !h.cfg.IsProduction() {
			details = derr.Err.Error()
		}
		writeError(w, http.StatusInternalServerError, failure, details)
		return
	}

	h.log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Msg("unhandled error")
	writeError(w, http.StatusInternalServerError, "Internal server error", nil)
}
