package middleware

import (
	"encoding/json"
	"net/http"
	"net/netip"

	"github.com/shashiX07/email-service/internal/auth"
	"github.com/shashiX07/email-service/internal/config"
	"github.com/shashiX07/email-service/internal/logger"
	"github.com/shashiX07/email-service/internal/ratelimit"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	limiter ratelimit.Store
	keys    *auth.KeyVerifier
	log     *logger.Logger
	cfg     *config.Config
	proxies []netip.Prefix
}

// New creates a new Middleware instance. limiter may be nil when rate
// limiting is disabled. Invalid trusted proxy entries are rejected by
// config.Validate and skipped here.
func New(limiter ratelimit.Store, keys *auth.KeyVerifier, log *logger.Logger, cfg *config.Config) *Middleware {
	proxies, err := cfg.Server.TrustedPrefixes()
	if err != nil {
		log.Error().Err(err).Msg("ignoring trusted proxies")
		proxies = nil
	}
	return &Middleware{
		limiter: limiter,
		keys:    keys,
		log:     log,
		cfg:     cfg,
		proxies: proxies,
	}
}

// errorBody mirrors the handler error envelope
type errorBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	RetryAfter string `json:"retryAfter,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
