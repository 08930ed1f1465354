// Package sql provides SQL fragment builders and a database/sql backed driver.
//
// The builders in this package render themselves into a shared Builder, so a
// statement can be composed from several sub-statements whose arguments are
// renumbered in order. The conditional update in package sqlcte is built this
// way: an identity SELECT, the caller's UPDATE and a projection SELECT appended
// into one WITH statement.
//
// # Builder Types
//
//   - Builder: low-level SQL string builder with identifier quoting and argument binding
//   - Predicate: WHERE / ON conditions (EQ, GTE, In, And, Or, Not, ...)
//   - Selector: SELECT with FROM, joins, WHERE and LIMIT
//   - UpdateBuilder: UPDATE with SET, WHERE and RETURNING
//
// # Dialect Support
//
// Identifiers and placeholders follow the configured dialect:
//
//	sql.Dialect(dialect.Postgres).
//	    Update("objects").
//	    Set("runtime", "new").
//	    Where(sql.EQ("id", id))
//	// UPDATE "objects" SET "runtime" = $1 WHERE "id" = $2
//
//	sql.Dialect(dialect.MySQL).Select("id").From(sql.Table("objects"))
//	// SELECT `id` FROM `objects`
//
// # Typed Columns
//
// Column binds a column name to the Go type stored in it:
//
//	var (
//	    ID  = sql.Column[uuid.UUID]("id")
//	    Gen = sql.Column[int]("gen")
//	)
//	u.Where(sql.And(ID.EQ(id), Gen.GTE(2)))
//
// # Driver
//
// Driver adapts *database/sql.DB to the dialect.Driver interface:
//
//	drv, err := sql.Open("pgx", dsn)
//	rows := &sql.Rows{}
//	err = drv.Query(ctx, query, args, rows)
//
// Debug wraps any dialect.Driver and logs the statements it sends through
// log/slog at debug level.
package sql
