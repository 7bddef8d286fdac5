package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyMobileUser = "mobile:user:%s"

// MobileLimiter throttles the technician app per authenticated user.
type MobileLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewMobileLimiter returns nil when redis is not configured; a nil limiter
// allows every request.
func NewMobileLimiter(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *MobileLimiter {
	addr := strings.TrimSpace(cfg.Redis.Addr)
	if addr == "" {
		log.Named("ratelimit").Info("redis not configured, mobile rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.Redis.Password),
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return newMobileLimiter(client, cfg.Mobile.RateLimitPerSecond, cfg.Mobile.RateLimitBurst)
}

func newMobileLimiter(client *redis.Client, rate float64, burst int) *MobileLimiter {
	if rate <= 0 {
		rate = 5
	}
	if burst <= 0 {
		burst = 20
	}
	return &MobileLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
	}
}

func (l *MobileLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow takes one token from the user's bucket.
func (l *MobileLimiter) Allow(ctx context.Context, userID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, mobileKey(userID), l.rate, l.burst)
}

func mobileKey(userID string) string {
	return fmt.Sprintf(keyMobileUser, strings.TrimSpace(userID))
}
