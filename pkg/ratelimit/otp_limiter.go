package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 15 * time.Minute
	keyPrefix          = "otp:fail:"
)

var (
	ErrLocked      = errors.New("too many failed otp attempts")
	ErrUnavailable = errors.New("otp limiter unavailable")
)

// OTPLimiter counts failed OTP verifications per user in a fixed window.
// The window starts at the first failure and lasts lockout.
type OTPLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int64
	lockout     time.Duration
}

// NewOTPLimiter falls back to 5 attempts / 15 minutes for non-positive values.
func NewOTPLimiter(client redis.UniversalClient, maxAttempts int, lockout time.Duration) *OTPLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &OTPLimiter{redis: client, maxAttempts: int64(maxAttempts), lockout: lockout}
}

func (l *OTPLimiter) key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

// Check returns ErrLocked once the user reached the failure budget.
func (l *OTPLimiter) Check(ctx context.Context, userID uuid.UUID) error {
	count, err := l.redis.Get(ctx, l.key(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count >= l.maxAttempts {
		return ErrLocked
	}
	return nil
}

func (l *OTPLimiter) RecordFailure(ctx context.Context, userID uuid.UUID) error {
	count, err := l.redis.Incr(ctx, l.key(userID)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, l.key(userID), l.lockout).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if count >= l.maxAttempts {
		return ErrLocked
	}
	return nil
}

func (l *OTPLimiter) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := l.redis.Del(ctx, l.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
