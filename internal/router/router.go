package router

import (
	"net/http"

	"github.com/shashiX07/email-service/internal/handler"
	"github.com/shashiX07/email-service/internal/metrics"
	"github.com/shashiX07/email-service/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Status endpoints (no auth, not rate limited)
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.Handle("GET /metrics", metrics.Handler())

	// Email-sending routes: rate limit first, then the API key
	protect := func(route string, fn http.HandlerFunc) http.Handler {
		return mw.RateLimit(route)(mw.APIKey(fn))
	}
	mux.Handle("POST /api/contact-form", protect("contact-form", h.ContactForm))
	mux.Handle("POST /api/send-email", protect("send-email", h.SendEmail))
	mux.Handle("POST /api/test-smtp", protect("test-smtp", h.TestSMTP))

	mux.Handle("POST /api/test-email", mw.APIKey(http.HandlerFunc(h.TestEmail)))

	// Everything else
	mux.HandleFunc("/", h.NotFound)

	// Apply middleware stack
	var handler http.Handler = mux

	handler = mw.CORS(allowedOrigins)(handler)

	// Security headers
	handler = mw.SecurityHeaders(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Caller address, honouring trusted proxies only
	handler = mw.RealIP(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
