package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shashiX07/email-service/internal/auth"
)

// APIKey rejects requests that do not present the configured key. Lookup
// order is the X-API-Key header, then an "apiKey" field in a JSON body, then
// the apiKey query parameter. The body is restored for the handler.
func (m *Middleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, source, err := m.presentedKey(w, r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusBadRequest, "Request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}

		if err := m.keys.Verify(key); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, auth.ErrMissingKey) {
				status = http.StatusUnauthorized
			}

			m.log.Warn().
				Str("request_id", GetRequestID(r.Context())).
				Str("client_ip", ClientIP(r)).
				Str("key_source", string(source)).
				Str("key_fingerprint", auth.Fingerprint(key)).
				Msg(err.Error())

			writeError(w, status, err.Error())
			return
		}

		m.log.Debug().
			Str("request_id", GetRequestID(r.Context())).
			Str("key_source", string(source)).
			Str("key_fingerprint", auth.Fingerprint(key)).
			Msg("API key accepted")

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) presentedKey(w http.ResponseWriter, r *http.Request) (string, auth.KeySource, error) {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key, auth.KeySourceHeader, nil
	}

	if r.Body != nil && r.Body != http.NoBody {
		limit := m.cfg.Server.MaxBodyBytes
		if limit <= 0 {
			limit = 10 << 20
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
		r.Body.Close()
		if err != nil {
			return "", auth.KeySourceNone, err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var payload struct {
			APIKey string `json:"apiKey"`
		}
		// Malformed bodies are reported by the handler
		if json.Unmarshal(body, &payload) == nil && payload.APIKey != "" {
			return payload.APIKey, auth.KeySourceBody, nil
		}
	}

	if key := r.URL.Query().Get("apiKey"); key != "" {
		return key, auth.KeySourceQuery, nil
	}

	return "", auth.KeySourceNone, nil
}
