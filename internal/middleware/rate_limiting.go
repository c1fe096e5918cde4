package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP and forgets idle clients.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRateLimiter allows requests per window seconds with the given burst. A
// non-positive request count disables limiting.
func NewRateLimiter(ctx context.Context, requests, windowSeconds, burst int) *RateLimiter {
	limit := rate.Inf
	if requests > 0 {
		if windowSeconds <= 0 {
			windowSeconds = 60
		}
		limit = rate.Limit(float64(requests) / float64(windowSeconds))
	}
	if burst < requests {
		burst = requests
	}
	if burst <= 0 {
		burst = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	l := &RateLimiter{
		limit:    limit,
		burst:    burst,
		visitors: make(map[string]*visitor),
		cancel:   cancel,
	}

	l.wg.Add(1)
	go l.cleanupLoop(ctx)
	return l
}

func (l *RateLimiter) visitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Allow reports whether ip may issue a request now.
func (l *RateLimiter) Allow(ip string) bool {
	if l == nil || l.limit == rate.Inf {
		return true
	}
	return l.visitor(ip).Allow()
}

func (l *RateLimiter) cleanupLoop(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup(time.Now())
		}
	}
}

func (l *RateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, ip)
		}
	}
}

// Shutdown stops the cleanup goroutine and waits for it to finish.
func (l *RateLimiter) Shutdown() {
	if l == nil {
		return
	}
	l.cancel()
	l.wg.Wait()
}

// RateLimitMiddleware answers 429 once the client IP runs out of tokens.
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldBypassRateLimit(c.Request) || limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "too many requests, please try again later",
		})
		c.Abort()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if strings.HasPrefix(path, "/uploads/") {
		return true
	}
	switch path {
	case "/health", "/metrics":
		return true
	}
	return false
}
