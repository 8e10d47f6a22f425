// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandlink_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "code"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandlink_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandlink_login_attempts_total",
			Help: "Credential checks by outcome.",
		},
		[]string{"outcome"},
	)

	ApprovalDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandlink_influencer_reviews_total",
			Help: "Admin review decisions by result.",
		},
		[]string{"status"},
	)

	AccessDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandlink_access_denied_total",
			Help: "Requests stopped by the access or approval gate.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, LoginAttempts, ApprovalDecisions, AccessDenials)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
