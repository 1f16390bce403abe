package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ActivityTracker enforces the back-office inactivity timeout. Each
// authenticated request slides a per-user activity key forward; once the key
// expires the session is considered idle and the user must log in again.
// The tracker is constructed in main and passed to the auth middleware, so
// the timeout state has an explicit owner instead of living in package
// globals.
type ActivityTracker struct {
	redis   *redis.Client
	timeout time.Duration
}

func NewActivityTracker(redisClient *redis.Client, timeout time.Duration) *ActivityTracker {
	return &ActivityTracker{redis: redisClient, timeout: timeout}
}

// Begin marks the start of an authenticated session at login.
func (t *ActivityTracker) Begin(ctx context.Context, userID uuid.UUID) error {
	return t.redis.Set(ctx, activityKey(userID), time.Now().UTC().Format(time.RFC3339), t.timeout).Err()
}

// Touch slides the activity window for a request. Returns false when the
// session has already expired from inactivity.
func (t *ActivityTracker) Touch(ctx context.Context, userID uuid.UUID) (bool, error) {
	ok, err := t.redis.Expire(ctx, activityKey(userID), t.timeout).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// End discards the session at logout.
func (t *ActivityTracker) End(ctx context.Context, userID uuid.UUID) error {
	return t.redis.Del(ctx, activityKey(userID)).Err()
}

func activityKey(userID uuid.UUID) string {
	return "session_activity:" + userID.String()
}
