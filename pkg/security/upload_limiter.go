package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps resume uploads with a Redis sliding window:
// per client IP per minute and per user per day.
type UploadLimiter struct {
	client       *goredis.Client
	maxPerMinute int
	maxPerDay    int
	now          func() time.Time
}

// KEYS[1] = window key, ARGV = limit, window seconds, now (unix), member.
// Returns 1 when the upload is admitted, 0 when the window is full.
var uploadWindowScript = goredis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
    return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('EXPIRE', key, window)
return 1
`)

// NewUploadLimiter defaults to 10 uploads/min per IP and 50 uploads/day per user.
// A nil client admits every upload.
func NewUploadLimiter(client *goredis.Client, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{
		client:       client,
		maxPerMinute: perMin,
		maxPerDay:    perDay,
		now:          time.Now,
	}
}

// AllowUpload returns (allowed, retryAfterSeconds, error). Redis errors fail
// open: the upload is admitted and the error returned for logging.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, userID string) (bool, int, error) {
	if ul == nil || ul.client == nil {
		return true, 0, nil
	}
	now := ul.now()

	allowed, err := ul.admit(ctx, "ratelimit:upload:ip:"+ip, ul.maxPerMinute, 60, now)
	if err != nil {
		return true, 0, fmt.Errorf("upload limit check failed: %w", err)
	}
	if !allowed {
		return false, 60, nil
	}

	if userID != "" {
		allowed, err = ul.admit(ctx, "ratelimit:upload:user:"+userID, ul.maxPerDay, 86400, now)
		if err != nil {
			return true, 0, fmt.Errorf("upload limit check failed: %w", err)
		}
		if !allowed {
			return false, 3600, nil
		}
	}
	return true, 0, nil
}

func (ul *UploadLimiter) admit(ctx context.Context, key string, limit, window int, now time.Time) (bool, error) {
	member := fmt.Sprintf("%d", now.UnixNano())
	res, err := uploadWindowScript.Run(ctx, ul.client, []string{key}, limit, window, now.Unix(), member).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
