package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET,POST,OPTIONS"
	corsAllowHeaders  = "Content-Type, X-Guest-Id, X-Request-Id"
	corsExposeHeaders = "X-Request-Id, Retry-After"
	corsMaxAge        = "600"
)

// originPolicy matches request origins against the configured list. Entries
// are exact origins, "*" for any origin, or "scheme://*.domain" for any
// subdomain of domain.
type originPolicy struct {
	exact    map[string]struct{}
	suffixes []string // "scheme://" + "." + domain
	any      bool
}

func newOriginPolicy(allowed []string) originPolicy {
	p := originPolicy{exact: make(map[string]struct{})}
	for _, raw := range allowed {
		entry := strings.TrimSpace(raw)
		switch {
		case entry == "":
		case entry == "*":
			p.any = true
		case strings.Contains(entry, "://*."):
			scheme, domain, _ := strings.Cut(entry, "://*.")
			p.suffixes = append(p.suffixes, scheme+"://."+domain)
		default:
			p.exact[strings.TrimSuffix(entry, "/")] = struct{}{}
		}
	}
	return p
}

func (p originPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if p.any {
		return true
	}
	if _, ok := p.exact[origin]; ok {
		return true
	}
	scheme, host, ok := strings.Cut(origin, "://")
	if !ok || host == "" {
		return false
	}
	for _, suffix := range p.suffixes {
		wantScheme, domain, _ := strings.Cut(suffix, "://")
		if scheme == wantScheme && strings.HasSuffix(host, domain) && len(host) > len(domain) {
			return true
		}
	}
	return false
}

// CORS echoes allowed origins back with credentials enabled and ends
// preflight requests with 204. Disallowed origins get no CORS headers.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	policy := newOriginPolicy(allowedOrigins)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if origin := c.GetHeader("Origin"); policy.allows(origin) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
