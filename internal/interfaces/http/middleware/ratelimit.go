package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limit middleware settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// SkipPaths bypass limiting; health and metrics probes stay unthrottled.
	SkipPaths []string
	// CleanupInterval controls how often idle client limiters are evicted.
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig returns the default limiter settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		CleanupInterval:   5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client IP.
type ClientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
	stop    chan struct{}
}

// NewClientRateLimiter starts a limiter with background eviction of idle
// clients.
func NewClientRateLimiter(rps float64, burst int, cleanupInterval time.Duration) *ClientRateLimiter {
	l := &ClientRateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go l.cleanupLoop(cleanupInterval)
	}
	return l
}

// Allow reports whether the client may proceed.
func (l *ClientRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	l.mu.Unlock()
	return cl.limiter.Allow()
}

// ClientCount returns the number of tracked clients.
func (l *ClientRateLimiter) ClientCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Stop halts the eviction goroutine.
func (l *ClientRateLimiter) Stop() {
	close(l.stop)
}

func (l *ClientRateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			threshold := time.Now().Add(-interval)
			l.mu.Lock()
			for key, cl := range l.clients {
				if cl.lastSeen.Before(threshold) {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// RateLimit enforces a per-client request rate.
func RateLimit(limiter *ClientRateLimiter, cfg RateLimitConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "COMMON_007",
				"message": "rate limit exceeded, please retry later",
			})
			return
		}
		c.Next()
	}
}
