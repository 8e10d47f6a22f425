package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"brandlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const rateLimitWindow = time.Minute

// Limiter answers whether one more attempt under key fits the per-minute budget.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter keeps a token bucket per key in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	sweep   time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(rateLimitWindow / time.Duration(perMinute)),
		burst:   perMinute,
		ttl:     5 * time.Minute,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.sweep) > l.ttl {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > l.ttl {
				delete(l.buckets, k)
			}
		}
		l.sweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

if redis.call('ZCARD', key) >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)
return 1
`)

// RedisLimiter shares a sliding window across instances.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	prefix string
}

func NewRedisLimiter(client *redis.Client, perMinute int) *RedisLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &RedisLimiter{client: client, limit: perMinute, prefix: "brandlink:ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	ok, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.prefix + key},
		time.Now().Unix(), int64(rateLimitWindow.Seconds()), l.limit,
	).Int()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis rate limit check failed, allowing request")
		return true
	}
	return ok == 1
}

// RateLimit throttles by client IP under the given scope name.
func RateLimit(l Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		if !l.Allow(c.Request.Context(), scope+":"+c.ClientIP()) {
			log.Warn().Str("client_ip", c.ClientIP()).Str("scope", scope).Msg("rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(int(rateLimitWindow.Seconds())))
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many attempts, try again later")
			return
		}
		c.Next()
	}
}
