package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter answers whether a client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter 固定窗口计数器，多实例部署时共享额度
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, rpm int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: int64(rpm), window: time.Minute}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s", key)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	// start the window on the first hit only; refreshing it on every
	// request would let counts accumulate across windows
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= l.limit, nil
}

// LocalLimiter 单进程令牌桶兜底（未配置 redis 时使用）
type LocalLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
}

func NewLocalLimiter(rpm int) *LocalLimiter {
	return &LocalLimiter{
		limit:   rate.Limit(float64(rpm) / 60.0),
		burst:   rpm,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	l.mu.Unlock()
	return b.Allow(), nil
}
