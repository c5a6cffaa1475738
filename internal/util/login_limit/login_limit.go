package login_limit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clubhub/internal/cache"

	"github.com/valkey-io/valkey-go"
)

// LoginLimiter counts failed sign-in attempts per (email, client IP) pair.
// After MaxFailedAttempts failures the pair is locked out until the counter
// expires; a successful sign-in resets the counter.
type LoginLimiter struct {
	client valkey.Client
	window time.Duration
}

type LockStatus struct {
	FailedAttempts int  `json:"failedAttempts"`
	Locked         bool `json:"locked"`
	RetryAfterSec  int  `json:"retryAfterSec,omitempty"`
}

const (
	MaxFailedAttempts = 5

	defaultTimeout = 5 * time.Second
	defaultWindow  = 15 * time.Minute
	keyPrefix      = "login_attempts:"
)

// Lua script for recording a failed attempt.
// This script atomically:
// 1. Increments the failure counter
// 2. Starts the lockout window on the first failure
// 3. Returns the new counter and the remaining window
const failedAttemptLuaScript = `
local key = KEYS[1]
local window = tonumber(ARGV[1])

local count = redis.call('INCR', key)
if count == 1 then
    redis.call('EXPIRE', key, window)
end

local ttl = redis.call('TTL', key)
if ttl < 0 then
    redis.call('EXPIRE', key, window)
    ttl = window
end

return {count, ttl}
`

func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		client: cache.GetCache(),
		window: defaultWindow,
	}
}

func NewLoginLimiterWithWindow(window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client: cache.GetCache(),
		window: window,
	}
}

// AttemptKey builds the counter key for an email/client address pair.
func AttemptKey(email, clientIP string) string {
	return strings.ToLower(email) + "|" + clientIP
}

func (l *LoginLimiter) Check(email, clientIP string) (*LockStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	key := keyPrefix + AttemptKey(email, clientIP)

	result := l.client.Do(ctx, l.client.B().Get().Key(key).Build())
	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return &LockStatus{}, nil
		}

		return nil, fmt.Errorf("failed to check login attempts: %w", result.Error())
	}

	count, err := result.AsInt64()
	if err != nil {
		return nil, fmt.Errorf("failed to parse login attempt counter: %w", err)
	}

	status := &LockStatus{FailedAttempts: int(count)}
	if count < MaxFailedAttempts {
		return status, nil
	}

	status.Locked = true

	ttlResult := l.client.Do(ctx, l.client.B().Ttl().Key(key).Build())
	if ttl, err := ttlResult.AsInt64(); err == nil && ttl > 0 {
		status.RetryAfterSec = int(ttl)
	} else {
		status.RetryAfterSec = int(l.window.Seconds())
	}

	return status, nil
}

func (l *LoginLimiter) RegisterFailure(email, clientIP string) (*LockStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	key := keyPrefix + AttemptKey(email, clientIP)
	windowSec := int64(l.window.Seconds())

	result := l.client.Do(ctx, l.client.B().Eval().
		Script(failedAttemptLuaScript).
		Numkeys(1).
		Key(key).
		Arg(fmt.Sprintf("%d", windowSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("failed to record login failure: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse login failure result: %w", err)
	}

	if len(values) < 2 {
		return nil, fmt.Errorf("invalid login failure result: expected 2 values, got %d", len(values))
	}

	status := &LockStatus{FailedAttempts: int(values[0])}
	if status.FailedAttempts >= MaxFailedAttempts {
		status.Locked = true
		status.RetryAfterSec = int(values[1])
	}

	return status, nil
}

func (l *LoginLimiter) Reset(email, clientIP string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	key := keyPrefix + AttemptKey(email, clientIP)

	result := l.client.Do(ctx, l.client.B().Del().Key(key).Build())
	return result.Error()
}
