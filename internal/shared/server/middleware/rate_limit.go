package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/respond"
)

// Rate limit groups.
const (
	GroupDefault = "DEFAULT"
	GroupAnalyze = "ANALYZE"
)

// RateLimitRule is a token bucket: Rate tokens per second, Burst capacity.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	// KeyFor names the bucket owner for a request in group. It defaults to
	// RateLimitKey.
	KeyFor  func(c *gin.Context, group string) string
	Limiter *RateLimiter
}

// DefaultIdleTTL is how long an unused bucket is kept.
const DefaultIdleTTL = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	rule     RateLimitRule
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key. Buckets idle for longer than
// the TTL, and long enough to have refilled, are dropped.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	now       func() time.Time
	idleTTL   time.Duration
	lastSweep time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		now:       now,
		idleTTL:   DefaultIdleTTL,
		lastSweep: now(),
	}
}

// WithIdleTTL sets how long an unused bucket is kept.
func (l *RateLimiter) WithIdleTTL(ttl time.Duration) *RateLimiter {
	l.idleTTL = ttl
	return l
}

// Len reports the number of live buckets.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimitKey keys the analyze group on the client address, since the
// guest header is chosen by the caller. Other groups use the resolved
// identity and fall back to the address.
func RateLimitKey(c *gin.Context, group string) string {
	if group != GroupAnalyze {
		if principal := strings.TrimSpace(UserIDFromContext(c)); principal != "" {
			return principal + "|" + group
		}
	}
	return "ip:" + strings.TrimSpace(c.ClientIP()) + "|" + group
}

// RateLimit rejects requests over the group's rule with 429 and Retry-After.
// Groups without a rule are not limited.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = GroupDefault
	}
	if cfg.KeyFor == nil {
		cfg.KeyFor = RateLimitKey
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		allowed, retryAfter := cfg.Limiter.Allow(cfg.KeyFor(c, group), rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		metrics.IncRateLimited(group)
		respond.Log(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":        "rate_limited",
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Allow takes one token from the bucket for key. When the bucket is empty
// it reports how long until a token is available and takes nothing.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	lim := l.limiter(key, rule, now)
	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, delay.Round(time.Millisecond)
}

func (l *RateLimiter) limiter(key string, rule RateLimitRule, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(rule.Rate), rule.Burst), rule: rule}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

// sweep drops idle buckets. A bucket is only dropped once it would have
// refilled, so eviction never hands a caller extra tokens. Callers hold mu.
func (l *RateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		refill := time.Duration(float64(b.rule.Burst) / b.rule.Rate * float64(time.Second))
		if idle := now.Sub(b.lastSeen); idle >= l.idleTTL && idle >= refill {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// AnalyzeGroup routes analysis submissions to GroupAnalyze.
func AnalyzeGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.HasPrefix(c.FullPath(), "/api/v1/analyses") {
		return GroupAnalyze
	}
	return GroupDefault
}
