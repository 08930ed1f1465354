package sqlcte

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	"github.com/syssam/updatecte"
	"github.com/syssam/updatecte/dialect"
	"github.com/syssam/updatecte/dialect/sql"
)

// Exec compiles the request, sends it to the store once and classifies the
// result:
//
//   - no row: updatecte.RowMissing
//   - a row whose updated key is NULL: updatecte.RowFoundNotUpdated
//   - a row whose found and updated keys are equal: updatecte.RowUpdated
//
// Any other row shape is reported as an *updatecte.InvariantError. Failures of
// the store are returned as *updatecte.StoreError wrapping the driver error.
//
// The statement runs with the isolation level of drv. Exec adds no locking
// and no retries, so concurrent requests on the same key race exactly as two
// native conditional UPDATE statements would. If ctx is canceled, the row is
// left as the store decided: either fully updated or untouched.
func (r *Request[K]) Exec(ctx context.Context, drv dialect.ExecQuerier, opts ...ExecOption) (updatecte.Outcome, error) {
	cfg := newExecConfig(opts)
	stmt, err := r.Compile()
	if err != nil {
		return 0, err
	}
	if d, ok := drv.(interface{ Dialect() string }); ok && d.Dialect() != stmt.Dialect() {
		return 0, updatecte.NewConfigurationError(r.table.Name,
			fmt.Errorf("%w: driver %q, statement %q", ErrDialectMismatch, d.Dialect(), stmt.Dialect()))
	}
	if !r.consumed.CompareAndSwap(false, true) {
		return 0, updatecte.NewConfigurationError(r.table.Name, ErrRequestConsumed)
	}
	start := time.Now()
	outcome, err := r.exec(ctx, drv, stmt)
	cfg.observe(ctx, r.table.Name, stmt, outcome, err, time.Since(start))
	return outcome, err
}

func (r *Request[K]) exec(ctx context.Context, drv dialect.ExecQuerier, stmt *Statement) (updatecte.Outcome, error) {
	query, args := stmt.Query()
	rows := &sql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return 0, updatecte.NewStoreError("query", err)
	}
	defer rows.Close()
	return r.interpret(rows)
}

// interpret reads the at most one (found, updated) row of the statement.
func (r *Request[K]) interpret(rows sql.ColumnScanner) (updatecte.Outcome, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, updatecte.NewStoreError("next", err)
		}
		return updatecte.RowMissing, nil
	}
	var found, updated stdsql.Null[K]
	if err := rows.Scan(&found, &updated); err != nil {
		return 0, updatecte.NewStoreError("scan", err)
	}
	if rows.Next() {
		return 0, r.invariant(found, updated, "more than one row returned for a single key")
	}
	if err := rows.Err(); err != nil {
		return 0, updatecte.NewStoreError("next", err)
	}
	return r.classify(found, updated)
}

// classify maps a (found, updated) pair to an outcome. The equality check is
// implied by the join condition and kept to catch a malformed statement.
func (r *Request[K]) classify(found, updated stdsql.Null[K]) (updatecte.Outcome, error) {
	switch {
	case !found.Valid:
		return 0, r.invariant(found, updated, "found key is NULL")
	case !updated.Valid:
		return updatecte.RowFoundNotUpdated, nil
	case found.V == updated.V:
		return updatecte.RowUpdated, nil
	default:
		return 0, r.invariant(found, updated, "found and updated keys differ")
	}
}

func (r *Request[K]) invariant(found, updated stdsql.Null[K], msg string) error {
	e := &updatecte.InvariantError{Table: r.table.Name, Key: r.key, Msg: msg}
	if found.Valid {
		e.Found = found.V
	}
	if updated.Valid {
		e.Updated = updated.V
	}
	return e
}
