package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/server/internal/utils/metrics"
)

// Metrics returns a middleware that records request metrics. Paths are
// recorded by route template so path parameters do not explode the
// label space.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()

		c.Next()

		m.HTTPRequestsInFlight.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
