package sqlcte

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/syssam/updatecte"
	"github.com/syssam/updatecte/dialect/sql"
)

// Reasons wrapped by the updatecte.ConfigurationError values returned from
// this package.
var (
	// ErrReturningClause is returned when the update already has a RETURNING
	// clause. The conditional update adds its own.
	ErrReturningClause = errors.New("update statement already has a RETURNING clause")
	// ErrTableMismatch is returned when the update targets another table
	// than the one the request describes.
	ErrTableMismatch = errors.New("update statement targets a different table")
	// ErrMissingGuard is returned when the update has no WHERE clause and
	// would change every row of the table.
	ErrMissingGuard = errors.New("update statement has no WHERE clause")
	// ErrKeyAssignment is returned when the update assigns the primary key
	// column. The updated row would no longer match the row that was found.
	ErrKeyAssignment = errors.New("update statement assigns the primary key column")
	// ErrUnsupportedDialect is returned when compiling for a dialect without
	// data-modifying common table expressions.
	ErrUnsupportedDialect = errors.New("dialect does not support data-modifying common table expressions")
	// ErrDialectMismatch is returned when the driver speaks another dialect
	// than the one the statement was built for.
	ErrDialectMismatch = errors.New("driver dialect does not match the statement dialect")
	// ErrRequestConsumed is returned when a request is executed a second time.
	ErrRequestConsumed = errors.New("request was already executed")
)

// Request is a conditional update of a single row: the caller's UPDATE,
// paired with the primary key of the row it is meant to change.
//
// A Request holds its own copy of the update builder, so changing the
// builder after wrapping has no effect on the request. A Request executes at
// most once; build a fresh one for every attempt.
type Request[K comparable] struct {
	table    Table[K]
	update   *sql.UpdateBuilder
	key      K
	consumed atomic.Bool
}

// CheckIfExists wraps u in a conditional update that also reports whether the
// row identified by key exists. u carries the guard predicate and the
// assignments. It must have a WHERE clause, must not assign the primary key
// column and must not have a RETURNING clause.
//
// The validation is structural and performs no I/O.
func CheckIfExists[K comparable](t Table[K], u *sql.UpdateBuilder, key K) (*Request[K], error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	switch {
	case u == nil:
		return nil, updatecte.NewConfigurationError(t.Name, errors.New("missing update statement"))
	case u.TableName() != t.Name:
		return nil, updatecte.NewConfigurationError(t.Name, fmt.Errorf("%w: %q", ErrTableMismatch, u.TableName()))
	case u.HasReturning():
		return nil, updatecte.NewConfigurationError(t.Name, ErrReturningClause)
	case !u.HasWhere():
		return nil, updatecte.NewConfigurationError(t.Name, ErrMissingGuard)
	case slices.Contains(u.Columns(), t.Key.Name()):
		return nil, updatecte.NewConfigurationError(t.Name, fmt.Errorf("%w: %q", ErrKeyAssignment, t.Key.Name()))
	}
	if err := u.Err(); err != nil {
		return nil, updatecte.NewConfigurationError(t.Name, err)
	}
	return &Request[K]{table: t, update: u.Clone(), key: key}, nil
}

// Table returns the table the request targets.
func (r *Request[K]) Table() Table[K] {
	return r.table
}

// Key returns the primary key of the row the request targets.
func (r *Request[K]) Key() K {
	return r.key
}
