package ratelimit

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

// RedisLimiter counts hits per key in a fixed 24-hour window.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	window time.Duration
	limit  int64
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		window: windowHours * time.Hour,
		limit:  1,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return false, errors.New("rate limiter not configured")
	}
	if key == "" {
		return false, errors.New("rate limiter key is empty")
	}

	res, err := l.script.Run(
		ctx,
		l.client,
		[]string{"ratelimit:feedback:" + key},
		int64(l.window/time.Millisecond),
	).Int64()
	if err != nil {
		return false, err
	}

	return res <= l.limit, nil
}
