package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditSeverity tags an audit entry with the weight of the recorded action.
type AuditSeverity string

const (
	// AuditSuccess marks a routine administrative action.
	AuditSuccess AuditSeverity = "Success"
	// AuditWarning marks a destructive or security-relevant action.
	AuditWarning AuditSeverity = "Warning"
	// AuditError marks a recorded failure.
	AuditError AuditSeverity = "Error"
)

// IsValid checks if the AuditSeverity is a valid value.
func (s AuditSeverity) IsValid() bool {
	switch s {
	case AuditSuccess, AuditWarning, AuditError:
		return true
	default:
		return false
	}
}

// AuditEntry is one record in the append-only administrative action log.
type AuditEntry struct {
	ID          uuid.UUID     // The unique identifier for the entry.
	Action      string        // Human-readable description, e.g. "Blocked user Alice".
	PerformedBy string        // The operator or subsystem that acted.
	Date        time.Time     // When the action happened.
	Severity    AuditSeverity // Weight of the action.
}
