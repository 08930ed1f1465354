package updatecte

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrConfiguration is matched by every ConfigurationError.
	ErrConfiguration = errors.New("updatecte: invalid configuration")

	// ErrInvariant is matched by every InvariantError.
	ErrInvariant = errors.New("updatecte: internal invariant violated")
)

// ConfigurationError is returned when a conditional update cannot be built or
// compiled from what the caller supplied. It is always detected before the
// statement is sent to the store.
type ConfigurationError struct {
	Table string // Table the update targets, if known.
	Err   error  // Underlying reason.
}

// Error returns the error string.
func (e *ConfigurationError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("updatecte: invalid conditional update on %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("updatecte: invalid conditional update: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ConfigurationError.
// This allows errors.Is(err, ErrConfiguration) to return true.
func (e *ConfigurationError) Is(err error) bool {
	return err == ErrConfiguration
}

// NewConfigurationError returns a new ConfigurationError.
func NewConfigurationError(table string, err error) *ConfigurationError {
	return &ConfigurationError{Table: table, Err: err}
}

// IsConfigurationError returns true if the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e)
}

// StoreError wraps a failure surfaced by the backing store while executing a
// conditional update. The store error is kept as is and reachable with
// errors.As / errors.Is.
type StoreError struct {
	Op  string // Operation (e.g., "query", "scan", "next")
	Err error  // Underlying error
}

// Error returns the error string.
func (e *StoreError) Error() string {
	return fmt.Sprintf("updatecte: store %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError returns a new StoreError.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError returns true if the error is a StoreError.
func IsStoreError(err error) bool {
	if err == nil {
		return false
	}
	var e *StoreError
	return errors.As(err, &e)
}

// InvariantError reports a result row that the conditional update statement
// cannot produce when it is built correctly. It signals a defect and must not
// be treated as an outcome.
type InvariantError struct {
	Table   string // Table the update targets
	Key     any    // Existence key of the request
	Found   any    // Found key as returned by the store (nil for NULL)
	Updated any    // Updated key as returned by the store (nil for NULL)
	Msg     string // What was violated
}

// Error returns the error string.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("updatecte: %s on %s (key=%v found=%v updated=%v)", e.Msg, e.Table, e.Key, e.Found, e.Updated)
}

// Is reports whether the target error matches InvariantError.
func (e *InvariantError) Is(err error) bool {
	return err == ErrInvariant
}

// IsInvariantError returns true if the error is an InvariantError.
func IsInvariantError(err error) bool {
	if err == nil {
		return false
	}
	var e *InvariantError
	return errors.As(err, &e)
}
