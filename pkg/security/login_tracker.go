package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block (default: 5)
	AttemptWindow time.Duration // Time window for tracking attempts (default: 15min)
	BlockDuration time.Duration // How long to block after max attempts (default: 15min)
	UseIPTracking bool          // Also track by IP address (default: true)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker counts failed logins in Redis and blocks an email (and IP)
// once MaxAttempts is reached. With a nil client it fails open.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

// NewLoginTracker creates a new login tracker with the given config
func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if logger == nil {
		logger = NopLogger()
	}
	return &LoginTracker{client: client, config: config, logger: logger}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	failLoginIPPrefix      = "fail:login:ip:"
	blockedLoginUserPrefix = "blocked:login:user:"
	blockedLoginIPPrefix   = "blocked:login:ip:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
var incrWithTTLScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// IsBlocked checks if the given email or IP is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	if lt.client == nil {
		return false, nil
	}

	keys := []string{blockedLoginUserPrefix + normalizeEmail(email)}
	if lt.config.UseIPTracking && ip != "" {
		keys = append(keys, blockedLoginIPPrefix+ip)
	}
	exists, err := lt.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt records a failed login attempt and reports whether a
// block was created. Returns (blocked, currentAttempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	email = normalizeEmail(email)
	lt.logger.LogLoginFailed(ctx, email, ip, userAgent, requestID, "invalid_credentials")

	if lt.client == nil {
		return false, 0, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	userCount, err := lt.atomicIncrement(ctx, failLoginUserPrefix+email, ttlSeconds)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment user counter: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_, _ = lt.atomicIncrement(ctx, failLoginIPPrefix+ip, ttlSeconds) // Best effort
	}

	if userCount >= lt.config.MaxAttempts {
		if err := lt.createBlock(ctx, email, ip, requestID); err != nil {
			return true, userCount, fmt.Errorf("failed to create block: %w", err)
		}
		return true, userCount, nil
	}
	return false, userCount, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	count, err := incrWithTTLScript.Run(ctx, lt.client, []string{key}, ttlSeconds).Int64()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// createBlock creates a temporary block for the user (and optionally IP)
func (lt *LoginTracker) createBlock(ctx context.Context, email, ip, requestID string) error {
	blockTTL := lt.config.BlockDuration

	if err := lt.client.Set(ctx, blockedLoginUserPrefix+email, "1", blockTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user block: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		if err := lt.client.Set(ctx, blockedLoginIPPrefix+ip, "1", blockTTL).Err(); err != nil {
			// User is already blocked
			lt.logger.zapLogger.Warn("failed to set IP block", zap.Error(err))
		}
	}

	lt.logger.LogBlockCreated(ctx, "email", email, ip, requestID, int(blockTTL.Minutes()))
	return nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email, ip string) error {
	if lt.client == nil {
		return nil
	}

	if err := lt.client.Del(ctx, failLoginUserPrefix+normalizeEmail(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}
	if lt.config.UseIPTracking && ip != "" {
		_ = lt.client.Del(ctx, failLoginIPPrefix+ip).Err() // Best effort
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
