package logentry

import (
	"strings"
	"time"
)

type (
	Level    string
	Severity string

	Entry struct {
		Level     Level
		Message   string
		Timestamp time.Time
		Context   map[string]any
	}
)

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"

	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

func ParseLevel(s string) Level { return Level(strings.ToLower(strings.TrimSpace(s))) }

// Severity reports the capture severity for l; ok is false for levels that are only printed.
func (l Level) Severity() (Severity, bool) {
	switch l {
	case LevelError:
		return SeverityError, true
	case LevelWarn:
		return SeverityWarning, true
	default:
		return "", false
	}
}
