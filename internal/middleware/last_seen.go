package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeenToucher records that a user was active.
type SeenToucher interface {
	TouchLastSeen(ctx context.Context, userID int) error
}

// SeenThrottle reports whether last-seen should be written now for a user.
type SeenThrottle interface {
	ShouldTouch(ctx context.Context, userID int) bool
}

type RedisSeenThrottle struct {
	client   *redis.Client
	interval time.Duration
}

func NewRedisSeenThrottle(client *redis.Client, interval time.Duration) *RedisSeenThrottle {
	return &RedisSeenThrottle{client: client, interval: interval}
}

func (t *RedisSeenThrottle) ShouldTouch(ctx context.Context, userID int) bool {
	key := "user:lastseen:" + strconv.Itoa(userID)
	ok, err := t.client.SetNX(ctx, key, "1", t.interval).Result()
	return err == nil && ok
}

type MemorySeenThrottle struct {
	mu       sync.Mutex
	seen     map[int]time.Time
	interval time.Duration
	now      func() time.Time
}

func NewMemorySeenThrottle(interval time.Duration) *MemorySeenThrottle {
	return &MemorySeenThrottle{
		seen:     make(map[int]time.Time),
		interval: interval,
		now:      time.Now,
	}
}

func (t *MemorySeenThrottle) ShouldTouch(_ context.Context, userID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.seen[userID]; ok && now.Sub(last) < t.interval {
		return false
	}
	t.seen[userID] = now
	return true
}

// TouchLastSeen runs after JWTMiddleware. Failures are logged and never
// block the request.
func TouchLastSeen(toucher SeenToucher, throttle SeenThrottle, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := security.UserID(c)
		if ok && throttle.ShouldTouch(c.Request.Context(), userID) {
			if err := toucher.TouchLastSeen(c.Request.Context(), userID); err != nil {
				logger.Warn("failed to update last seen", zap.Int("user_id", userID), zap.Error(err))
			}
		}
		c.Next()
	}
}
