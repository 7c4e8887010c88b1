package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "HTTP requests by role surface, route and status",
		},
		[]string{"surface", "method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(httpRequests, httpDuration)
}

// surfaceOf maps a registered route to its role group so counter traffic
// (cashier checkouts) can be read apart from back-office and webhook traffic.
func surfaceOf(path string) string {
	for _, s := range []string{"/cashier", "/owner", "/stock", "/accountant", "/scan"} {
		if path == s || strings.HasPrefix(path, s+"/") {
			return s[1:]
		}
	}
	return "public"
}

// PrometheusMiddleware records every request against its registered route
// pattern; unmatched paths collapse into one label to keep cardinality down.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequests.WithLabelValues(surfaceOf(path), c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
