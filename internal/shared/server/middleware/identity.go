package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/server/respond"
)

const (
	userIDKey     = "userId"
	isGuestKey    = "isGuest"
	guestIDHeader = "X-Guest-Id"
	guestPrefix   = "guest:"
)

// Identity reads the X-Guest-Id header and stores "guest:<id>" as the
// caller identity. Requests without the header continue anonymously.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if guestID := strings.TrimSpace(c.GetHeader(guestIDHeader)); guestID != "" {
			c.Set(userIDKey, guestPrefix+guestID)
			c.Set(isGuestKey, true)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests that Identity could not attribute.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// IsGuestFromContext reports whether the caller was identified by a guest id.
func IsGuestFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}
