package models

// Severity is the variant of a user notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)
