package domain

import "fmt"

// ValidationError reports a bad or missing product field. It is raised before
// any write reaches the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// UploadError reports a malformed sales-history upload. Line is 1-based and
// refers to the data row in the uploaded file, 0 when the file as a whole is
// unusable.
type UploadError struct {
	Line   int
	Reason string
}

func (e *UploadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("upload rejected at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("upload rejected: %s", e.Reason)
}

// NoHistoryError signals that a derived computation was requested for a
// product with no sales records. Callers render this as an empty state, not a
// failure.
type NoHistoryError struct {
	ProductCode string
}

func (e *NoHistoryError) Error() string {
	if e.ProductCode == "" {
		return "no sales history available"
	}
	return fmt.Sprintf("no sales history available for product %s", e.ProductCode)
}

// ConnectionError wraps a database connectivity failure so the handler layer
// can surface it as a service-unavailable message instead of a generic 500.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database unreachable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
