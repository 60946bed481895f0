package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Delivery outcomes
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

var (
	Deliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "email_deliveries_total",
		Help: "Total number of delivery attempts grouped by endpoint, provider and outcome",
	}, []string{"endpoint", "provider", "outcome"})
	DeliveryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "email_delivery_duration_seconds",
		Help:    "Time spent in the transport per delivery attempt, including verification",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"provider"})
	RateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "email_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"route"})
	// Route is the registered pattern, never the raw path, to bound cardinality
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(Deliveries)
	prometheus.MustRegister(DeliveryDuration)
	prometheus.MustRegister(RateLimited)
	prometheus.MustRegister(HTTPRequests)
}

// Handler returns the Prometheus exposition handler
func Handler() http.Handler {
	return promhttp.Handler()
}
