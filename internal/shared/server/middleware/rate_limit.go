package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultRateLimitGroup = "DEFAULT"

// RateLimitRule is a token-bucket policy: sustained requests per second
// plus an initial burst allowance.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig maps request groups to rules. GroupFor classifies a
// request; groups without a rule pass through unlimited.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter tracks one token bucket per principal+group key. The clock
// is injectable for tests.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	now     func() time.Time
}

type tokenBucket struct {
	tokens   float64
	refilled time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{buckets: make(map[string]*tokenBucket), now: now}
}

// Allow takes one token from the bucket for key, refilling by elapsed
// time first. When empty it reports how long until the next token.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[key]
	if b == nil {
		b = &tokenBucket{tokens: float64(rule.Burst), refilled: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
		b.refilled = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	wait := (1 - b.tokens) / rule.Rate
	if wait < 0 {
		wait = 0
	}
	return false, time.Duration(math.Ceil(wait*1000)) * time.Millisecond
}

// RateLimit enforces per-identity token buckets. The limit key is the
// authenticated user (falling back to client IP) joined with the group.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	fallbackGroup := cfg.DefaultGroup
	if fallbackGroup == "" {
		fallbackGroup = defaultRateLimitGroup
	}

	return func(c *gin.Context) {
		group := fallbackGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, limited := cfg.Rules[group]
		if !limited {
			c.Next()
			return
		}

		who := strings.TrimSpace(UserIDFromContext(c))
		if who == "" {
			who = strings.TrimSpace(c.ClientIP())
		}

		ok, retryAfter := limiter.Allow(who+"|"+group, rule)
		if ok {
			c.Next()
			return
		}
		rejectRateLimited(c, retryAfter)
	}
}

func rejectRateLimited(c *gin.Context, retryAfter time.Duration) {
	ms := int(retryAfter / time.Millisecond)
	if ms <= 0 {
		ms = 1000
	}
	secs := (ms + 999) / 1000

	c.Header("Retry-After", strconv.Itoa(secs))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":        "rate_limited",
		"retryAfterMs": ms,
	})
	c.Abort()
}
