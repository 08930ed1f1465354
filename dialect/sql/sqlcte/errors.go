package sqlcte

import (
	"errors"
	"strings"
)

// The helpers below classify the driver error wrapped by an
// updatecte.StoreError. They only inspect it; Exec returns the store error
// unchanged.

// sqlStateError is an interface for errors that provide SQLSTATE codes.
// Implemented by: pgconn.PgError (pgx) and pq.Error.
type sqlStateError interface {
	SQLState() string
}

// PostgreSQL SQLSTATE codes.
const (
	pgNotNullViolation     = "23502"
	pgForeignKeyViolation  = "23503"
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// IsConstraintError returns true if the update was rejected by a database
// constraint (not null, unique, foreign key or check).
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err) ||
		hasState(err, pgNotNullViolation, "violates not-null constraint")
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness constraint violation.
func IsUniqueConstraintError(err error) bool {
	return hasState(err, pgUniqueViolation, "violates unique constraint")
}

// IsForeignKeyConstraintError reports if the error resulted from a database foreign-key constraint violation.
func IsForeignKeyConstraintError(err error) bool {
	return hasState(err, pgForeignKeyViolation, "violates foreign key constraint")
}

// IsCheckConstraintError reports if the error resulted from a database check constraint violation.
func IsCheckConstraintError(err error) bool {
	return hasState(err, pgCheckViolation, "violates check constraint")
}

// IsSerializationFailure reports if the statement lost a serialization
// conflict (or a deadlock) against a concurrent transaction. Such failures
// leave the row untouched and the caller may build a new request and retry.
func IsSerializationFailure(err error) bool {
	return hasState(err, pgSerializationFailure, "could not serialize access") ||
		hasState(err, pgDeadlockDetected, "deadlock detected")
}

// hasState checks the SQLSTATE of err, falling back to matching the message
// for drivers that do not expose it.
func hasState(err error, code, msg string) bool {
	if err == nil {
		return false
	}
	var e sqlStateError
	if errors.As(err, &e) && e.SQLState() != "" {
		return e.SQLState() == code
	}
	return strings.Contains(err.Error(), msg)
}

