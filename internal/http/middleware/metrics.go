package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/outreach-backend/internal/observability"
)

const healthRoute = "/healthcheck"

// Metrics records API latency and in-flight gauges. Health checks are skipped
// so load balancer polling does not drown the panel routes.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if m == nil || route == healthRoute {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		m.APIInflightInc()
		defer m.APIInflightDec()
		start := time.Now()
		c.Next()

		m.ObserveAPI(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
