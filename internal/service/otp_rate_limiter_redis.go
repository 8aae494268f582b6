package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisOTPSlidingWindowScript registra un intento en un sorted set por email y responde 1 si
// entra en la ventana o 0 si ya hay max intentos. Misma semántica que el limitador en memoria.
const redisOTPSlidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)
if redis.call("ZCARD", key) >= max then
  return 0
end
redis.call("ZADD", key, now, ARGV[4])
redis.call("PEXPIRE", key, window)
return 1
`

type redisOTPRateLimiter struct {
	client redisEvaler
	logger *zap.Logger
	window time.Duration
	max    int
	prefix string
	now    func() time.Time
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisOTPRateLimiter comparte la ventana entre réplicas. Si Redis falla, deja pasar y loguea.
func NewRedisOTPRateLimiter(client *redis.Client, logger *zap.Logger, window time.Duration, max int) OTPRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisOTPRateLimiter{
		client: client,
		logger: logger,
		window: window,
		max:    max,
		prefix: "wonnda:otp:rl:",
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *redisOTPRateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	email := normalizeEmail(key)
	if email == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	allowed, err := l.client.Eval(ctx, redisOTPSlidingWindowScript, []string{l.prefix + email},
		l.now().UnixMilli(), l.window.Milliseconds(), l.max, uuid.NewString()).Int()
	if err != nil {
		l.logger.Warn("otp rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	return allowed == 1
}
