package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/shashiX07/email-service/internal/metrics"
)

// RateLimit counts requests per client address against the configured
// window. Route labels the rejection metric. Store errors let the request
// through.
func (m *Middleware) RateLimit(route string) func(http.Handler) http.Handler {
	limit := m.cfg.RateLimit.Limit
	window := m.cfg.RateLimit.Window

	return func(next http.Handler) http.Handler {
		if !m.cfg.RateLimit.Enabled || m.limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			res, err := m.limiter.Hit(r.Context(), "email:"+ip, limit, window)
			if err != nil {
				m.log.Error().Err(err).Str("client_ip", ip).Msg("failed to check rate limit")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining()))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))

			if !res.Allowed {
				metrics.RateLimited.WithLabelValues(route).Inc()
				m.log.Warn().
					Str("request_id", GetRequestID(r.Context())).
					Str("client_ip", ip).
					Str("route", route).
					Int("count", res.Count).
					Msg("rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.ResetAfter.Seconds()))))
				writeJSON(w, http.StatusTooManyRequests, errorBody{
					Error:      "Too many email requests, please try again later.",
					RetryAfter: humanizeWindow(window),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// humanizeWindow renders a window as "10 minutes", "1 hour" or "30 seconds"
func humanizeWindow(d time.Duration) string {
	unit, n := "second", int(d/time.Second)
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		unit, n = "hour", int(d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		unit, n = "minute", int(d/time.Minute)
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}
