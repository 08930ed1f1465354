package sqlcte_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/updatecte"
	"github.com/syssam/updatecte/dialect"
	"github.com/syssam/updatecte/dialect/sql"
	"github.com/syssam/updatecte/dialect/sql/sqlcte"
)

// postgresDrivers are the database/sql drivers the integration tests run with.
var postgresDrivers = []string{"postgres", "pgx"}

// forEachDriver runs f against a fresh objects table for every driver.
// The tests are skipped unless UPDATECTE_POSTGRES_DSN is set.
func forEachDriver(t *testing.T, f func(t *testing.T, drv *sql.Driver, table sqlcte.Table[int64])) {
	dsn := os.Getenv("UPDATECTE_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("UPDATECTE_POSTGRES_DSN is not set")
	}
	for _, name := range postgresDrivers {
		t.Run(name, func(t *testing.T) {
			drv, err := sql.Open(name, dsn)
			require.NoError(t, err)
			t.Cleanup(func() { drv.Close() })
			require.Equal(t, dialect.Postgres, drv.Dialect())

			ctx := context.Background()
			table := sqlcte.NewTable("objects_"+strings.ReplaceAll(uuid.NewString(), "-", ""), sql.Column[int64]("id"))
			create := fmt.Sprintf(`CREATE TABLE %q (id BIGINT PRIMARY KEY, runtime TEXT NOT NULL, gen BIGINT NOT NULL)`, table.Name)
			require.NoError(t, drv.Exec(ctx, create, []any{}, nil))
			t.Cleanup(func() {
				drop := fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table.Name)
				assert.NoError(t, drv.Exec(context.Background(), drop, []any{}, nil))
			})
			insert := fmt.Sprintf(`INSERT INTO %q (id, runtime, gen) VALUES ($1, $2, $3)`, table.Name)
			require.NoError(t, drv.Exec(ctx, insert, []any{int64(1), "old", int64(1)}, nil))
			f(t, drv, table)
		})
	}
}

type object struct {
	runtime string
	gen     int64
}

func load(t *testing.T, drv *sql.Driver, table sqlcte.Table[int64], id int64) (object, bool) {
	t.Helper()
	query, args := sql.Dialect(dialect.Postgres).
		Select("runtime", "gen").
		From(sql.Table(table.Name)).
		Where(table.Key.EQ(id)).
		Query()
	rows := &sql.Rows{}
	require.NoError(t, drv.Query(context.Background(), query, args, rows))
	defer rows.Close()
	if !rows.Next() {
		require.NoError(t, rows.Err())
		return object{}, false
	}
	var o object
	require.NoError(t, rows.Scan(&o.runtime, &o.gen))
	return o, true
}

func count(t *testing.T, drv *sql.Driver, table string) int {
	t.Helper()
	rows := &sql.Rows{}
	require.NoError(t, drv.Query(context.Background(), fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table), []any{}, rows))
	defer rows.Close()
	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	return n
}

func TestIntegrationObjects(t *testing.T) {
	forEachDriver(t, func(t *testing.T, drv *sql.Driver, table sqlcte.Table[int64]) {
		ctx := context.Background()
		setRuntime := func(id, minGen int64) *sql.UpdateBuilder {
			return sql.Dialect(dialect.Postgres).
				Update(table.Name).
				Set("runtime", "new").
				Where(sql.And(table.Key.EQ(id), gen.GTE(minGen)))
		}

		req, err := table.UpdateIf(1, setRuntime(1, 2))
		require.NoError(t, err)
		outcome, err := req.Exec(ctx, drv)
		require.NoError(t, err)
		assert.Equal(t, updatecte.RowFoundNotUpdated, outcome)
		o, ok := load(t, drv, table, 1)
		require.True(t, ok)
		assert.Equal(t, object{runtime: "old", gen: 1}, o)

		bump := sql.Dialect(dialect.Postgres).Update(table.Name).Set("gen", int64(2)).Where(table.Key.EQ(1))
		query, args := bump.Query()
		require.NoError(t, drv.Exec(ctx, query, args, nil))

		req, err = table.UpdateIf(1, setRuntime(1, 2))
		require.NoError(t, err)
		outcome, err = req.Exec(ctx, drv)
		require.NoError(t, err)
		assert.Equal(t, updatecte.RowUpdated, outcome)
		o, _ = load(t, drv, table, 1)
		assert.Equal(t, object{runtime: "new", gen: 2}, o)

		req, err = table.UpdateIf(999, setRuntime(999, 2))
		require.NoError(t, err)
		outcome, err = req.Exec(ctx, drv)
		require.NoError(t, err)
		assert.Equal(t, updatecte.RowMissing, outcome)
		_, ok = load(t, drv, table, 999)
		assert.False(t, ok, "a missing row is never created")
		assert.Equal(t, 1, count(t, drv, table.Name))
	})
}

func TestIntegrationMonotonicGuard(t *testing.T) {
	forEachDriver(t, func(t *testing.T, drv *sql.Driver, table sqlcte.Table[int64]) {
		ctx := context.Background()
		steps := []struct {
			gen  int64
			want updatecte.Outcome
		}{
			{5, updatecte.RowUpdated},
			{3, updatecte.RowFoundNotUpdated},
			{5, updatecte.RowFoundNotUpdated},
			{6, updatecte.RowUpdated},
		}
		for _, step := range steps {
			u := sql.Dialect(dialect.Postgres).
				Update(table.Name).
				Set("gen", step.gen).
				Where(sql.And(table.Key.EQ(1), gen.LT(step.gen)))
			req, err := table.UpdateIf(1, u)
			require.NoError(t, err)
			outcome, err := req.Exec(ctx, drv)
			require.NoError(t, err)
			assert.Equal(t, step.want, outcome, "gen %d", step.gen)
		}
		o, _ := load(t, drv, table, 1)
		assert.Equal(t, int64(6), o.gen)
	})
}

func TestIntegrationConcurrentCallers(t *testing.T) {
	forEachDriver(t, func(t *testing.T, drv *sql.Driver, table sqlcte.Table[int64]) {
		const workers = 8
		var (
			mu       sync.Mutex
			outcomes = make(map[updatecte.Outcome]int)
			stats    sqlcte.Stats
		)
		g, ctx := errgroup.WithContext(context.Background())
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				u := sql.Dialect(dialect.Postgres).
					Update(table.Name).
					Set("runtime", fmt.Sprintf("worker-%d", i)).
					Where(sql.And(table.Key.EQ(1), sql.EQ("runtime", "old")))
				req, err := table.UpdateIf(1, u)
				if err != nil {
					return err
				}
				outcome, err := req.Exec(ctx, drv, sqlcte.WithStats(&stats))
				if err != nil {
					return err
				}
				mu.Lock()
				outcomes[outcome]++
				mu.Unlock()
				return nil
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, 1, outcomes[updatecte.RowUpdated])
		assert.Equal(t, workers-1, outcomes[updatecte.RowFoundNotUpdated])
		assert.Zero(t, outcomes[updatecte.RowMissing])
		assert.Equal(t, int64(workers), stats.Snapshot().Total())

		o, _ := load(t, drv, table, 1)
		assert.True(t, strings.HasPrefix(o.runtime, "worker-"))
	})
}
