package core

import (
	"errors"
	"fmt"
)

// ErrSessionDead marks a transient driver failure: the underlying session
// is dead or invalid and a fresh connection may succeed. Drivers wrap
// dead-session failures with this sentinel so the client can distinguish
// them from SQL errors, which are never retried.
var ErrSessionDead = errors.New("session is dead")

// IsTransient reports whether err signals a dead session.
func IsTransient(err error) bool {
	return errors.Is(err, ErrSessionDead)
}

// ConnectionError is returned when the reconnect budget is exhausted.
// It wraps the last transient failure so the original cause is preserved.
type ConnectionError struct {
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SQLError is returned when the engine rejects a statement. SQL errors
// propagate immediately and never trigger a reconnect.
type SQLError struct {
	Query string
	Err   error
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("sql execution failed: %v", e.Err)
}

func (e *SQLError) Unwrap() error { return e.Err }

// UnsupportedTypeError is returned when a driver reports a column type
// with no logical mapping. This is a configuration fault and is never
// silently defaulted.
type UnsupportedTypeError struct {
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported driver type %q", e.TypeName)
}

// UnsupportedOperationError is returned when a caller requests
// functionality this layer does not implement.
type UnsupportedOperationError struct {
	Op     string
	Reason string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("operation %q is not supported", e.Op)
	}
	return fmt.Sprintf("operation %q is not supported: %s", e.Op, e.Reason)
}

// SchemaProbeError is returned when a schema probe query drains
// incorrectly or its metadata is malformed.
type SchemaProbeError struct {
	Query string
	Err   error
}

func (e *SchemaProbeError) Error() string {
	return fmt.Sprintf("schema probe failed for %q: %v", e.Query, e.Err)
}

func (e *SchemaProbeError) Unwrap() error { return e.Err }
