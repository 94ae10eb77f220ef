package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/documents"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/telemetry"
)

// RouterDeps holds the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	// Limiter is shared across routers when set; tests inject one with a
	// frozen clock.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Without trusted proxies ClientIP is the peer address, which the
	// rate limiter relies on.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		telemetry.Warn("router.trusted_proxies_invalid", map[string]any{"error": err})
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateLimitRules(deps.Config),
			GroupFor: middleware.AnalyzeGroup,
			Limiter:  deps.Limiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		payload, ok := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})
	registerMeRoutes(api)
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitRules limits analysis submissions only. A zero rate or burst
// disables limiting.
func rateLimitRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil
	}
	return map[string]middleware.RateLimitRule{
		middleware.GroupAnalyze: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
