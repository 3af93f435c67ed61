package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// RateLimitConfig rate limiting ayarları
type RateLimitConfig struct {
	RequestsPerMinute int // 0 rate limiting'i kapatır
	Burst             int
	SkipPaths         []string
	IdleTimeout       time.Duration // Bu süre görülmeyen IP'nin limiter'ı silinir
	CleanupInterval   time.Duration
	ErrorConfig       *errors.ErrorConfig
}

// DefaultRateLimitConfig varsayılan rate limit ayarları
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 600,
		Burst:             50,
		SkipPaths: []string{
			"/health",
			"/metrics",
		},
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: 10 * time.Minute,
	}
}

// ipLimiter tek bir IP için rate limiter
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter client IP başına token bucket uygular
type RateLimiter struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.Mutex
}

// NewRateLimiter yeni rate limiter oluşturur.
// Temizlik goroutine'i ctx iptal edilince durur.
func NewRateLimiter(ctx context.Context, config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}

	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*ipLimiter),
	}

	if config.RequestsPerMinute > 0 && config.CleanupInterval > 0 {
		go rl.cleanupLimiters(ctx)
	}

	return rl
}

// Handler rate limiting middleware'i döner
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl.config.RequestsPerMinute <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.shouldSkipPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := utils.GetClientIP(r)
		limiter := rl.limiterFor(clientIP)

		reservation := limiter.Reserve()
		delay := reservation.Delay()
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.RequestsPerMinute))

		if delay > 0 {
			reservation.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Remaining", "0")

			log.Warn().Str("client_ip", clientIP).Msg("Request blocked - rate limit exceeded")
			WriteError(w, r, &errors.RateLimitError{
				Message:    "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
				RetryAfter: retryAfter,
			}, rl.config.ErrorConfig)
			return
		}

		remaining := int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		next.ServeHTTP(w, r)
	})
}

// limiterFor IP'nin limiter'ını döner, yoksa oluşturur
func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	entry, exists := rl.limiters[ip]
	if !exists {
		every := rate.Every(time.Minute / time.Duration(rl.config.RequestsPerMinute))
		entry = &ipLimiter{limiter: rate.NewLimiter(every, rl.config.Burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// ActiveLimiters takip edilen IP sayısı
func (rl *RateLimiter) ActiveLimiters() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) shouldSkipPath(path string) bool {
	for _, skipPath := range rl.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

// cleanupLimiters uzun süredir görülmeyen IP'lerin limiter'larını siler
func (rl *RateLimiter) cleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > rl.config.IdleTimeout {
			delete(rl.limiters, ip)
		}
	}

	log.Debug().Int("active_limiters", len(rl.limiters)).Msg("Rate limiter cleanup completed")
}
