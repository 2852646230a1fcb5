package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from the EventType, never supplied by callers.
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

// Administrative events
const (
	EventUserStatusChanged EventType = "user_status_changed"
	EventUserDeleted       EventType = "user_deleted"
	EventJobRemoved        EventType = "job_removed"
	EventDataExport        EventType = "data_export"
	EventAdminSeeded       EventType = "admin_seeded"
	EventAccountClosed     EventType = "account_closed"
)

var eventSeverity = map[EventType]Severity{
	EventLoginSuccess: SeverityINFO,
	EventAdminSeeded:  SeverityINFO,

	EventAccountClosed:     SeverityMEDIUM,
	EventDataExport:        SeverityMEDIUM,
	EventJobRemoved:        SeverityMEDIUM,
	EventUserStatusChanged: SeverityMEDIUM,

	EventLoginFailed:        SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventUnauthorizedAccess: SeverityWARN,
	EventTokenRefreshDenied: SeverityWARN,

	EventLoginBlocked:    SeverityHIGH,
	EventBlockCreated:    SeverityHIGH,
	EventForbiddenAccess: SeverityHIGH,
	EventUserDeleted:     SeverityHIGH,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := eventSeverity[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO, SeverityMEDIUM:
		return zapcore.InfoLevel
	case SeverityWARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
