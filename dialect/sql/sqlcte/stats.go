package sqlcte

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/syssam/updatecte"
)

// Stats counts the outcomes of executed requests. A single Stats may be shared
// by concurrent requests.
type Stats struct {
	// Missing is the number of RowMissing outcomes.
	Missing atomic.Int64
	// FoundNotUpdated is the number of RowFoundNotUpdated outcomes.
	FoundNotUpdated atomic.Int64
	// Updated is the number of RowUpdated outcomes.
	Updated atomic.Int64
	// StoreErrors is the number of executions that failed in the store.
	StoreErrors atomic.Int64
	// InvariantErrors is the number of malformed results.
	InvariantErrors atomic.Int64
	// Slow is the count of executions exceeding the slow threshold.
	Slow atomic.Int64
	// TotalDuration is the total time spent executing requests.
	TotalDuration atomic.Int64 // nanoseconds
}

// Snapshot returns a snapshot of the current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Missing:         s.Missing.Load(),
		FoundNotUpdated: s.FoundNotUpdated.Load(),
		Updated:         s.Updated.Load(),
		StoreErrors:     s.StoreErrors.Load(),
		InvariantErrors: s.InvariantErrors.Load(),
		Slow:            s.Slow.Load(),
		TotalDuration:   time.Duration(s.TotalDuration.Load()),
	}
}

// Reset resets all statistics to zero.
func (s *Stats) Reset() {
	s.Missing.Store(0)
	s.FoundNotUpdated.Store(0)
	s.Updated.Store(0)
	s.StoreErrors.Store(0)
	s.InvariantErrors.Store(0)
	s.Slow.Store(0)
	s.TotalDuration.Store(0)
}

func (s *Stats) record(o updatecte.Outcome, err error, d time.Duration, slow bool) {
	s.TotalDuration.Add(int64(d))
	if slow {
		s.Slow.Add(1)
	}
	switch {
	case updatecte.IsInvariantError(err):
		s.InvariantErrors.Add(1)
	case err != nil:
		s.StoreErrors.Add(1)
	case o == updatecte.RowMissing:
		s.Missing.Add(1)
	case o == updatecte.RowFoundNotUpdated:
		s.FoundNotUpdated.Add(1)
	case o == updatecte.RowUpdated:
		s.Updated.Add(1)
	}
}

// StatsSnapshot is a point-in-time snapshot of Stats.
type StatsSnapshot struct {
	Missing         int64
	FoundNotUpdated int64
	Updated         int64
	StoreErrors     int64
	InvariantErrors int64
	Slow            int64
	TotalDuration   time.Duration
}

// Total returns the number of recorded executions.
func (s StatsSnapshot) Total() int64 {
	return s.Missing + s.FoundNotUpdated + s.Updated + s.StoreErrors + s.InvariantErrors
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"missing=%d found_not_updated=%d updated=%d store_errors=%d invariant_errors=%d slow=%d duration=%s",
		s.Missing, s.FoundNotUpdated, s.Updated, s.StoreErrors, s.InvariantErrors, s.Slow, s.TotalDuration,
	)
}

// ExecOption configures a single Request.Exec call.
type ExecOption func(*execConfig)

type execConfig struct {
	logger        *slog.Logger
	stats         *Stats
	slowThreshold time.Duration
}

// WithLogger logs outcomes at debug level, store errors and slow executions
// at warn level, and invariant violations at error level. Without a logger,
// only invariant violations are logged, to slog.Default().
func WithLogger(l *slog.Logger) ExecOption {
	return func(c *execConfig) {
		c.logger = l
	}
}

// WithStats records the execution in s.
func WithStats(s *Stats) ExecOption {
	return func(c *execConfig) {
		c.stats = s
	}
}

// WithSlowThreshold sets the duration above which an execution is counted
// and logged as slow. Default is 100ms; zero disables the check.
func WithSlowThreshold(d time.Duration) ExecOption {
	return func(c *execConfig) {
		c.slowThreshold = d
	}
}

func newExecConfig(opts []ExecOption) *execConfig {
	c := &execConfig{slowThreshold: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *execConfig) observe(ctx context.Context, table string, stmt *Statement, o updatecte.Outcome, err error, d time.Duration) {
	slow := c.slowThreshold > 0 && d > c.slowThreshold
	if c.stats != nil {
		c.stats.record(o, err, d, slow)
	}
	query, _ := stmt.Query()
	switch {
	case updatecte.IsInvariantError(err):
		l := c.logger
		if l == nil {
			l = slog.Default()
		}
		l.ErrorContext(ctx, "conditional update returned a malformed result", "table", table, "error", err, "query", query)
	case c.logger == nil:
	case err != nil:
		c.logger.WarnContext(ctx, "conditional update failed", "table", table, "error", err)
	default:
		c.logger.DebugContext(ctx, "conditional update", "table", table, "outcome", o.String(), "duration", d)
	}
	if slow && c.logger != nil {
		c.logger.WarnContext(ctx, "slow conditional update", "table", table, "duration", d, "query", query)
	}
}
