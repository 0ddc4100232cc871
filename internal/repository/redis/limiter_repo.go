package redis

import (
	"context"
	"fmt"
	"time"
)

const loginAttemptPrefix = "login:attempts"

// LimiterRepository counts login attempts per client key. The counter
// expires with the window, so a quiet client starts fresh.
type LimiterRepository struct{}

// Hit increments the attempt counter for key and returns the new count.
// The window TTL is armed on the first hit only.
func (r *LimiterRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := fmt.Sprintf("%s:%s", loginAttemptPrefix, key)
	n, err := Client.Incr(ctx, k).Result()
	if err != nil {
		return 0, ErrRedisUnavailable
	}
	if n == 1 {
		if err := Client.Expire(ctx, k, window).Err(); err != nil {
			return 0, ErrRedisUnavailable
		}
	}
	return n, nil
}
