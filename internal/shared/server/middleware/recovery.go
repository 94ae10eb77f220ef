package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/telemetry"
)

// Recovery turns a panic in a handler into a 500 "internal" response. When
// the handler already started writing, the connection is only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
				"stack":      string(debug.Stack()),
			}
			if err, ok := rec.(error); ok {
				fields["error"] = err
			} else {
				fields["error"] = fmt.Sprint(rec)
			}
			telemetry.Error("panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
