// Package dialect names the SQL dialects updatecte knows about and defines the
// minimal driver surface the conditional update construct executes against.
//
// # Dialects
//
// Three dialects are recognized by the SQL builder:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite3"
//
// Only Postgres evaluates data-modifying common table expressions, so the
// conditional update in dialect/sql/sqlcte compiles for Postgres only. The
// other dialects remain available to the plain builders.
//
// # Driver Interface
//
// Execution goes through ExecQuerier, implemented by both Driver and Tx:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// A conditional update is a single statement, so it can be executed against a
// Driver directly or inside a caller-managed Tx.
//
// # Usage
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// # Sub-packages
//
//   - dialect/sql: SQL fragment builders and the database/sql driver adapter
//   - dialect/sql/sqlcte: conditional update with existence disambiguation
package dialect
