package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoginTracker_WithoutRedisFailsOpen(t *testing.T) {
	sl, logs := newObservedLogger()
	lt := NewLoginTracker(nil, DefaultLoginTrackerConfig(), sl)
	ctx := context.Background()

	blocked, err := lt.IsBlocked(ctx, "someone@example.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, attempts, err := lt.RecordFailedAttempt(ctx, " Someone@Example.com ", "10.0.0.1", "curl", "req-1")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Zero(t, attempts)

	assert.NoError(t, lt.ClearAttempts(ctx, "someone@example.com", "10.0.0.1"))

	// The failure is still audited, keyed by the normalised email.
	entries := logs.FilterMessage(string(EventLoginFailed)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, HashValue("someone@example.com"), entries[0].ContextMap()["subject_value"])
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestUploadLimiter_WithoutRedisAdmits(t *testing.T) {
	var nilLimiter *UploadLimiter
	allowed, retry, err := nilLimiter.AllowUpload(context.Background(), "10.0.0.1", "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, retry)

	allowed, _, err = NewUploadLimiter(nil, 0, 0).AllowUpload(context.Background(), "10.0.0.1", "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
}
