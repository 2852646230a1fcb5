package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventForbiddenAccess    EventType = "forbidden_access"
	EventTokenRefreshDenied EventType = "token_refresh_denied"
	EventBlockCreated       EventType = "block_created"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string // hashed unless the subject is an IP
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]interface{}
}

// SecurityLogger writes security audit events through zap.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewSecurityLogger builds a production zap logger writing JSON to stdout.
func NewSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return WrapLogger(logger, serviceName, environment)
}

// WrapLogger uses an existing zap logger, e.g. zap.NewNop() in tests.
func WrapLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// NopLogger discards every event.
func NopLogger() *SecurityLogger {
	return WrapLogger(zap.NewNop(), "", "")
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	severity := GetSeverity(event.Event)

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("event_time", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(severity.level(), string(event.Event), fields...)
}

// LogLoginSuccess logs a successful login
func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, userID, ip, userAgent, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
	})
}

// LogLoginFailed logs a failed login attempt
func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: HashValue(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

// LogLoginBlocked logs when a login is blocked due to too many attempts
func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, email, ip, userAgent, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "email",
		SubjectValue: HashValue(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": "too_many_failed_attempts"},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogUnauthorizedAccess logs a request rejected for missing or bad credentials.
func (sl *SecurityLogger) LogUnauthorizedAccess(ctx context.Context, ip, userAgent, requestID, endpoint, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventUnauthorizedAccess,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"endpoint": endpoint, "reason": reason},
	})
}

// LogForbiddenAccess logs an authenticated request denied by a policy check.
func (sl *SecurityLogger) LogForbiddenAccess(ctx context.Context, userID, ip, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventForbiddenAccess,
		SubjectType:  "user_id",
		SubjectValue: userID,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogTokenRefreshDenied logs a refresh rejected for a suspended or missing account.
func (sl *SecurityLogger) LogTokenRefreshDenied(ctx context.Context, userID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventTokenRefreshDenied,
		SubjectType:  "user_id",
		SubjectValue: userID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

// LogBlockCreated logs when a block is created
func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, subjectType, subjectValue, ip, requestID string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  subjectType,
		SubjectValue: maskValue(subjectType, subjectValue),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"duration_minutes": durationMinutes},
	})
}

// LogAdminAction records an administrative change made by actorID.
func (sl *SecurityLogger) LogAdminAction(ctx context.Context, event EventType, actorID, targetID string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["actor_id"] = actorID
	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  "user_id",
		SubjectValue: targetID,
		Details:      details,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// maskValue masks a value based on its type
func maskValue(subjectType, value string) string {
	if subjectType == "ip" {
		return value
	}
	return HashValue(value)
}
