package sql

import (
	"context"
	"log/slog"

	"github.com/syssam/updatecte/dialect"
)

// DebugDriver is a driver that logs every statement it sends at debug level.
type DebugDriver struct {
	dialect.Driver
	logger *slog.Logger
	args   bool
}

// DebugOption configures the DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithArgs adds the statement arguments to the log records.
// Arguments may carry user data and are left out by default.
func DebugWithArgs() DebugOption {
	return func(d *DebugDriver) {
		d.args = true
	}
}

// Debug wraps drv with statement logging. A nil logger logs to
// slog.Default().
//
//	drv, _ := sql.Open("pgx", dsn)
//	outcome, err := req.Exec(ctx, sql.Debug(drv, logger))
func Debug(drv dialect.Driver, logger *slog.Logger, opts ...DebugOption) *DebugDriver {
	if logger == nil {
		logger = slog.Default()
	}
	d := &DebugDriver{Driver: drv, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Query logs the query and runs it on the wrapped driver.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log(ctx, "query", query, args)
	return d.Driver.Query(ctx, query, args, v)
}

// Exec logs the statement and runs it on the wrapped driver.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log(ctx, "exec", query, args)
	return d.Driver.Exec(ctx, query, args, v)
}

// Tx starts a transaction with debug logging.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.DebugContext(ctx, "begin transaction")
	return &DebugTx{Tx: tx, drv: d}, nil
}

func (d *DebugDriver) log(ctx context.Context, msg, query string, args any) {
	attrs := []any{"query", query}
	if d.args {
		attrs = append(attrs, "args", args)
	}
	d.logger.DebugContext(ctx, msg, attrs...)
}

// DebugTx is a transaction started by a DebugDriver.
type DebugTx struct {
	dialect.Tx
	drv *DebugDriver
}

// Query logs the query and runs it within the transaction.
func (tx *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.drv.log(ctx, "tx query", query, args)
	return tx.Tx.Query(ctx, query, args, v)
}

// Exec logs the statement and runs it within the transaction.
func (tx *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.drv.log(ctx, "tx exec", query, args)
	return tx.Tx.Exec(ctx, query, args, v)
}

// Commit commits the transaction and logs it.
func (tx *DebugTx) Commit() error {
	tx.drv.logger.Debug("commit transaction")
	return tx.Tx.Commit()
}

// Rollback rolls back the transaction and logs it.
func (tx *DebugTx) Rollback() error {
	tx.drv.logger.Debug("rollback transaction")
	return tx.Tx.Rollback()
}

// Dialect returns the dialect of the driver that started the transaction.
func (tx *DebugTx) Dialect() string {
	return tx.drv.Dialect()
}

var (
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Tx     = (*DebugTx)(nil)
)
