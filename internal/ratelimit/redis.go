package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore counts requests per key in fixed one-minute windows shared by
// every instance using the same Redis.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

type RedisOption func(*RedisStore)

func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisStore(rdb redis.Cmdable, perMinute int, opts ...RedisOption) (*RedisStore, error) {
	if perMinute <= 0 {
		return nil, errNoLimit
	}
	s := &RedisStore{
		rdb:    rdb,
		prefix: "ratelimit",
		limit:  int64(perMinute),
		window: time.Minute,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) key(key string, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, key, at.Unix()/int64(s.window/time.Second))
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	k := s.key(key, s.now())

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, s.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: redis: %w", err)
	}
	return incr.Val() <= s.limit, nil
}
