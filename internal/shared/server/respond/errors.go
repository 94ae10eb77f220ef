package respond

import (
	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/telemetry"
)

// Gin context keys written by the request ID and identity middleware.
const (
	requestIDKey = "requestId"
	userIDKey    = "userId"
)

// ErrorBody is the payload under "error" in every failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// FieldIssue names one rejected request field and the rule it broke, e.g.
// {"jobUrl", "url"}.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Fields builds error details for a single field.
func Fields(field, issue string) []FieldIssue {
	return []FieldIssue{{Field: field, Issue: issue}}
}

// Error logs the failure and aborts with the standard error body.
func Error(c *gin.Context, status int, code, message string, details any) {
	Log(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

// Log writes the http.error line for a failed request without responding.
// 5xx statuses log at error level, everything else at warn.
func Log(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString(requestIDKey),
	}
	if userID := c.GetString(userIDKey); userID != "" {
		fields["user_id"] = userID
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
		return
	}
	telemetry.Warn("http.error", fields)
}
