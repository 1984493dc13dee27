package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/shared/telemetry"
)

// ResumeIDKey is the context key handlers set so request logs carry the resume id.
const ResumeIDKey = "resumeId"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if resumeID := c.GetString(ResumeIDKey); resumeID != "" {
			fields["resume_id"] = resumeID
		} else if id := c.Param("id"); id != "" {
			fields["resume_id"] = id
		}
		telemetry.Info("request.complete", fields)
	}
}
