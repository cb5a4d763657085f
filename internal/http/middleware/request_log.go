package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/outreach-backend/internal/platform/ctxutil"
	"github.com/yungbote/outreach-backend/internal/platform/logger"
)

// RequestLogger writes one line per request. Test-scoped routes also carry
// the perception test and panelist ids so a panel session can be followed.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		fields = appendParam(fields, c, "id", "test_id")
		fields = appendParam(fields, c, "panelistId", "panelist_id")

		ctx := c.Request.Context()
		if td := ctxutil.GetTraceData(ctx); td != nil {
			if td.RequestID != "" {
				fields = append(fields, "request_id", td.RequestID)
			}
			if td.TraceID != "" {
				fields = append(fields, "trace_id", td.TraceID)
			}
		}
		if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
			fields = append(fields, "user_id", rd.UserID.String())
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, "error", last.Error())
		}

		levelFor(log, status)("request served", fields...)
	}
}

func appendParam(fields []interface{}, c *gin.Context, param, key string) []interface{} {
	if v := c.Param(param); v != "" {
		return append(fields, key, v)
	}
	return fields
}

func levelFor(log *logger.Logger, status int) func(string, ...interface{}) {
	switch {
	case status >= 500:
		return log.Error
	case status >= 400:
		return log.Warn
	default:
		return log.Info
	}
}
