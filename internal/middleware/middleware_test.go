package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiX07/email-service/internal/auth"
	"github.com/shashiX07/email-service/internal/config"
	"github.com/shashiX07/email-service/internal/logger"
	"github.com/shashiX07/email-service/internal/ratelimit"
)

type failingStore struct{}

func (failingStore) Hit(context.Context, string, int, time.Duration) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis: connection refused")
}

func newTestMiddleware(store ratelimit.Store) *Middleware {
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute},
	}
	return New(store, auth.NewKeyVerifier("k"), logger.Nop(), cfg)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestClientIP(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{TrustedProxies: []string{"10.0.0.0/8", "127.0.0.1"}}}
	m := New(nil, auth.NewKeyVerifier("k"), logger.Nop(), cfg)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"untrusted peer ignores forwarding", map[string]string{"X-Forwarded-For": "203.0.113.1"}, "198.51.100.5:1234", "198.51.100.5"},
		{"untrusted peer ignores real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "198.51.100.5:1234", "198.51.100.5"},
		{"trusted proxy forwards client", map[string]string{"X-Forwarded-For": "203.0.113.1"}, "10.0.0.2:1234", "203.0.113.1"},
		{"rightmost untrusted hop wins", map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.1, 10.0.0.7"}, "10.0.0.2:1234", "203.0.113.1"},
		{"all hops trusted", map[string]string{"X-Forwarded-For": "10.0.0.9, 10.0.0.7"}, "127.0.0.1:1234", "10.0.0.9"},
		{"trusted proxy real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "10.0.0.2:1234", "203.0.113.2"},
		{"garbage header falls back to peer", map[string]string{"X-Forwarded-For": "not-an-ip"}, "10.0.0.2:1234", "10.0.0.2"},
		{"remote host", nil, "192.0.2.10:5555", "192.0.2.10"},
		{"remote without port", nil, "192.0.2.11", "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			var got string
			m.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ClientIP(r)
			})).ServeHTTP(httptest.NewRecorder(), r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientIPWithoutRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.5:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.1")
	assert.Equal(t, "198.51.100.5", ClientIP(r))
}

func TestRecover(t *testing.T) {
	m := newTestMiddleware(nil)
	h := m.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRateLimitStoreFailureAllowsRequest(t *testing.T) {
	m := newTestMiddleware(failingStore{})
	h := m.RateLimit("send-email")(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	store := ratelimit.NewMemoryStore(time.Hour)
	defer store.Stop()

	h := newTestMiddleware(store).RateLimit("send-email")(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestHumanizeWindow(t *testing.T) {
	assert.Equal(t, "10 minutes", humanizeWindow(10*time.Minute))
	assert.Equal(t, "1 minute", humanizeWindow(time.Minute))
	assert.Equal(t, "2 hours", humanizeWindow(2*time.Hour))
	assert.Equal(t, "90 seconds", humanizeWindow(90*time.Second))
}

func TestAPIKeyBodyTooLarge(t *testing.T) {
	m := newTestMiddleware(nil)
	m.cfg.Server.MaxBodyBytes = 16
	h := m.APIKey(okHandler)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"apiKey":"k","padding":"xxxxxxxxxxxxxxxx"}`))
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
