package http

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// IPRateLimiter limita requests por IP de cliente con un token bucket por IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	cleanup  time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewIPRateLimiter crea un limitador de perMinute requests por minuto y arranca la limpieza
// de entradas inactivas. perMinute <= 0 deshabilita el límite.
func NewIPRateLimiter(logger *zap.Logger, perMinute int) *IPRateLimiter {
	rl := &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Inf,
		burst:    perMinute,
		cleanup:  5 * time.Minute,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
	if perMinute > 0 {
		rl.rate = rate.Limit(float64(perMinute) / 60.0)
	}
	go rl.cleanupLoop()
	return rl
}

// Stop detiene la limpieza en segundo plano.
func (rl *IPRateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware responde 429 con Retry-After cuando la IP agotó su cupo.
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.get(ip).Allow() {
			rl.logger.Warn("rate limit exceeded", zap.String("client_ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", strconv.Itoa(rl.retryAfter()))
			respondError(c, http.StatusTooManyRequests, msgTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Len devuelve la cantidad de IPs con limitador activo.
func (rl *IPRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *IPRateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok := rl.limiters[ip]; ok {
		l.lastAccess = time.Now()
		return l.limiter
	}
	l := &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst), lastAccess: time.Now()}
	rl.limiters[ip] = l
	return l.limiter
}

func (rl *IPRateLimiter) retryAfter() int {
	if rl.rate == rate.Inf || rl.rate <= 0 {
		return 1
	}
	sec := int(math.Ceil(1.0 / float64(rl.rate)))
	if sec < 1 {
		sec = 1
	}
	return sec
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.evict(time.Now().Add(-2 * rl.cleanup))
		case <-rl.stopCh:
			return
		}
	}
}

// evict borra los limitadores sin uso desde before.
func (rl *IPRateLimiter) evict(before time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, l := range rl.limiters {
		if l.lastAccess.Before(before) {
			delete(rl.limiters, ip)
		}
	}
}
