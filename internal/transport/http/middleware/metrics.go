package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/shop-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// Metrics records latency and count per route template. Probe routes are
// skipped; unrouted paths share one label so scanners cannot grow the series
// set.
func Metrics(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.FullPath()]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}

		metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
	}
}
