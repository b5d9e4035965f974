package middleware

import (
	"strconv"
	"time"

	"dorm-services/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware labels by route template so path ids do not explode cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
