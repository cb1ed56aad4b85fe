package errors

import (
	"fmt"
	"time"
)

// OperationalError wraps an error with operational context: which source
// the box data came from, which box (if any) was involved, and when the
// failure occurred. This enables better error tracking when a layout run
// spans multiple ingestion sources.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	SourceID   string                 // Which data source (file path, remote URL, ...)
	BoxID      string                 // Which box, if applicable
	Timestamp  time.Time              // When the error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping cause. Returns
// nil if cause is nil.
func NewOperationalError(operation, sourceID, boxID string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}
	return &OperationalError{
		Operation: operation,
		SourceID:  sourceID,
		BoxID:     boxID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError carrying extra
// diagnostic attributes. Returns nil if cause is nil.
func NewOperationalErrorWithAttrs(operation, sourceID, boxID string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}
	return &OperationalError{
		Operation:  operation,
		SourceID:   sourceID,
		BoxID:      boxID,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: source={id} box={id}: {cause}". box= is
// omitted when BoxID is empty.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)
	if e.BoxID != "" {
		return fmt.Sprintf("[%s] %s: source=%s box=%s: %v",
			timestamp, e.Operation, e.SourceID, e.BoxID, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: source=%s: %v",
		timestamp, e.Operation, e.SourceID, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
