package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labtrack",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route template and status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "labtrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route template",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"method", "route"})

	reservationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "labtrack",
		Name:      "reservations_submitted_total",
		Help:      "Reservations created in the pending state",
	})

	reservationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labtrack",
		Name:      "reservation_decisions_total",
		Help:      "Reservation decisions by resulting status",
	}, []string{"status"})

	notificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labtrack",
		Name:      "notification_failures_total",
		Help:      "Side-effect notifications that could not be stored",
	}, []string{"trigger"})
)

// ObserveRequest records one served HTTP request. route is the matched
// template, never the raw path.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ReservationSubmitted counts a new pending reservation
func ReservationSubmitted() {
	reservationsSubmitted.Inc()
}

// ReservationDecided counts an approve or reject decision
func ReservationDecided(status string) {
	reservationDecisions.WithLabelValues(status).Inc()
}

// NotificationFailed counts a notification that was dropped after its
// triggering write succeeded
func NotificationFailed(trigger string) {
	notificationFailures.WithLabelValues(trigger).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
