package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestReservationCounters(t *testing.T) {
	before := testutil.ToFloat64(reservationDecisions.WithLabelValues("approved"))
	ReservationDecided("approved")
	assert.Equal(t, before+1, testutil.ToFloat64(reservationDecisions.WithLabelValues("approved")))

	submitted := testutil.ToFloat64(reservationsSubmitted)
	ReservationSubmitted()
	assert.Equal(t, submitted+1, testutil.ToFloat64(reservationsSubmitted))
}

func TestObserveRequestExposed(t *testing.T) {
	ObserveRequest(http.MethodGet, "/api/equipment/:id", http.StatusNotFound, 5*time.Millisecond)
	ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `labtrack_http_requests_total{method="GET",route="/api/equipment/:id",status="404"}`))
	assert.True(t, strings.Contains(body, `route="unmatched"`))
}
