package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/telemetry"
)

// Context keys handlers may set so the request log carries domain ids.
const (
	DocumentIDKey = "documentId"
	AnalysisIDKey = "analysisId"
	JobTypeKey    = "jobType"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		metrics.IncHTTPRequest(c.FullPath(), c.Writer.Status())

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"is_guest":    c.GetBool(isGuestKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for field, key := range map[string]string{
			"document_id": DocumentIDKey,
			"analysis_id": AnalysisIDKey,
			"job_type":    JobTypeKey,
		} {
			if v := c.GetString(key); v != "" {
				fields[field] = v
			}
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		telemetry.Info("request.complete", fields)
	}
}
