package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/winrydberg/alumni-backend/internal/pkg/metrics"
)

// Metrics records request duration and counts per route. The route
// template is used as the path label so IDs don't blow up cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
