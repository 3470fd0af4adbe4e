package ratelimit

import (
	"context"
	"strconv"
	"time"

	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "morgenstar:ratelimit:"

// slidingWindowScript trims entries older than the window, then admits the request
// when fewer than limit remain. Returns {allowed, remaining, retryAfterMs}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)

if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  redis.call('PEXPIRE', key, window)
  return {1, limit - count - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local retry = window
if oldest[2] then
  retry = tonumber(oldest[2]) + window - now
end
return {0, 0, retry}
`)

// redisLimiter is a sliding window shared by all instances.
type redisLimiter struct {
	client redis.Scripter
	now    func() time.Time
}

// NewRedisLimiter creates a limiter on top of a go-redis client
func NewRedisLimiter(client redis.Scripter) service.RateLimiter {
	return &redisLimiter{client: client, now: time.Now}
}

// Allow counts one request for key.
func (l *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*service.RateLimitResult, error) {
	nowMs := l.now().UnixMilli()

	raw, err := slidingWindowScript.Run(ctx, l.client,
		[]string{keyPrefix + key},
		nowMs, window.Milliseconds(), limit, strconv.FormatInt(nowMs, 10)+"-"+uuid.NewString(),
	).Result()
	if err != nil {
		return nil, errors.Wrap(err, "rate limit script failed")
	}

	values, ok := raw.([]any)
	if !ok || len(values) != 3 {
		return nil, errors.Errorf("unexpected rate limit script result: %v", raw)
	}

	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	retryMs, _ := values[2].(int64)

	return &service.RateLimitResult{
		Allowed:    allowed == 1,
		Remaining:  int(remaining),
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}
