package login_limit

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Check_WithNoFailures_NotLocked(t *testing.T) {
	limiter := NewLoginLimiter()
	email := testEmail()

	status, err := limiter.Check(email, "127.0.0.1")

	assert.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 0, status.FailedAttempts)
}

func Test_RegisterFailure_BelowThreshold_NotLocked(t *testing.T) {
	limiter := NewLoginLimiter()
	email := testEmail()

	for i := 1; i < MaxFailedAttempts; i++ {
		status, err := limiter.RegisterFailure(email, "127.0.0.1")
		assert.NoError(t, err)
		assert.False(t, status.Locked, "attempt %d should not lock", i)
		assert.Equal(t, i, status.FailedAttempts)
	}
}

func Test_RegisterFailure_AtThreshold_LocksWithRetryHint(t *testing.T) {
	limiter := NewLoginLimiter()
	email := testEmail()

	var status *LockStatus
	var err error
	for i := 0; i < MaxFailedAttempts; i++ {
		status, err = limiter.RegisterFailure(email, "127.0.0.1")
		assert.NoError(t, err)
	}

	assert.True(t, status.Locked)
	assert.Equal(t, MaxFailedAttempts, status.FailedAttempts)
	assert.True(t, status.RetryAfterSec > 0)

	checked, err := limiter.Check(email, "127.0.0.1")
	assert.NoError(t, err)
	assert.True(t, checked.Locked)
}

func Test_Reset_AfterLockout_UnlocksPair(t *testing.T) {
	limiter := NewLoginLimiter()
	email := testEmail()

	for i := 0; i < MaxFailedAttempts; i++ {
		_, err := limiter.RegisterFailure(email, "127.0.0.1")
		assert.NoError(t, err)
	}

	err := limiter.Reset(email, "127.0.0.1")
	assert.NoError(t, err)

	status, err := limiter.Check(email, "127.0.0.1")
	assert.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 0, status.FailedAttempts)
}

func Test_RegisterFailure_DifferentClientAddresses_CountedSeparately(t *testing.T) {
	limiter := NewLoginLimiter()
	email := testEmail()

	for i := 0; i < MaxFailedAttempts; i++ {
		_, err := limiter.RegisterFailure(email, "10.0.0.1")
		assert.NoError(t, err)
	}

	status, err := limiter.Check(email, "10.0.0.2")
	assert.NoError(t, err)
	assert.False(t, status.Locked)
}

func Test_RegisterFailure_CounterExpires_AfterWindow(t *testing.T) {
	limiter := NewLoginLimiterWithWindow(1 * time.Second)
	email := testEmail()

	for i := 0; i < MaxFailedAttempts; i++ {
		_, err := limiter.RegisterFailure(email, "127.0.0.1")
		assert.NoError(t, err)
	}

	time.Sleep(1500 * time.Millisecond)

	status, err := limiter.Check(email, "127.0.0.1")
	assert.NoError(t, err)
	assert.False(t, status.Locked)
}

func Test_AttemptKey_LowercasesEmail(t *testing.T) {
	assert.Equal(t, "user@x.edu|127.0.0.1", AttemptKey("User@X.edu", "127.0.0.1"))
}

func testEmail() string {
	return fmt.Sprintf("limit-%s@test.com", uuid.New().String()[:8])
}
