package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := NewWith("test", prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/facilities", 200, 25*time.Millisecond)
	m.RecordHTTPRequest("GET", "/facilities", 200, 30*time.Millisecond)
	m.RecordHTTPRequest("POST", "/bookings", 409, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/facilities", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("POST", "/bookings", "4xx")))
}

func TestRecordBooking(t *testing.T) {
	m := NewWith("test", prometheus.NewRegistry())

	m.RecordBooking("confirmed", "solo", 5102)
	m.RecordBooking("confirmed", "team", 30000)
	m.RecordBooking("failed", "solo", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.BookingsTotal.WithLabelValues("confirmed", "solo")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.BookingsTotal.WithLabelValues("failed", "solo")))
}

func TestRecordWebhookEvent(t *testing.T) {
	m := NewWith("test", prometheus.NewRegistry())

	m.RecordWebhookEvent("charge.success", "processed")
	m.RecordWebhookEvent("charge.success", "duplicate")

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.WebhookEventsTotal.WithLabelValues("charge.success", "processed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.WebhookEventsTotal.WithLabelValues("charge.success", "duplicate")))
}

func TestStatusCodeToString(t *testing.T) {
	assert.Equal(t, "2xx", statusCodeToString(204))
	assert.Equal(t, "4xx", statusCodeToString(422))
	assert.Equal(t, "5xx", statusCodeToString(502))
}
