package sqlcte_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/updatecte"
	"github.com/syssam/updatecte/dialect"
	"github.com/syssam/updatecte/dialect/sql"
	"github.com/syssam/updatecte/dialect/sql/sqlcte"
)

var (
	objects = sqlcte.NewTable("objects", sql.Column[int64]("id"))
	gen     = sql.Column[int64]("gen")
)

func guarded(id, minGen int64) *sql.UpdateBuilder {
	return sql.Dialect(dialect.Postgres).
		Update("objects").
		Set("runtime", "new").
		Where(sql.And(objects.Key.EQ(id), gen.GTE(minGen)))
}

func TestCheckIfExists(t *testing.T) {
	req, err := sqlcte.CheckIfExists(objects, guarded(1, 2), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), req.Key())
	assert.Equal(t, objects, req.Table())

	req, err = objects.UpdateIf(7, guarded(7, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(7), req.Key())
}

func TestCheckIfExistsValidation(t *testing.T) {
	tests := []struct {
		name   string
		table  sqlcte.Table[int64]
		update *sql.UpdateBuilder
		target error
		msg    string
	}{
		{
			name:   "MissingTableName",
			table:  sqlcte.NewTable("", sql.Column[int64]("id")),
			update: guarded(1, 2),
			msg:    "missing table name",
		},
		{
			name:   "MissingKeyColumn",
			table:  sqlcte.NewTable[int64]("objects", ""),
			update: guarded(1, 2),
			msg:    "missing primary key column",
		},
		{
			name:  "NilUpdate",
			table: objects,
			msg:   "missing update statement",
		},
		{
			name:   "TableMismatch",
			table:  objects,
			update: sql.Dialect(dialect.Postgres).Update("owners").Set("name", "a"),
			target: sqlcte.ErrTableMismatch,
		},
		{
			name:   "ReturningClause",
			table:  objects,
			update: guarded(1, 2).Returning("id"),
			target: sqlcte.ErrReturningClause,
		},
		{
			name:   "MissingWhere",
			table:  objects,
			update: sql.Dialect(dialect.Postgres).Update("objects").Set("runtime", "new"),
			target: sqlcte.ErrMissingGuard,
		},
		{
			name:   "KeyAssignment",
			table:  objects,
			update: guarded(1, 2).Set("id", 9),
			target: sqlcte.ErrKeyAssignment,
			msg:    `"id"`,
		},
		{
			name:   "EmptySet",
			table:  objects,
			update: sql.Dialect(dialect.Postgres).Update("objects").Where(objects.Key.EQ(1)),
			msg:    "without SET clause",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := sqlcte.CheckIfExists(tt.table, tt.update, 1)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, updatecte.IsConfigurationError(err))
			assert.ErrorIs(t, err, updatecte.ErrConfiguration)
			assert.False(t, updatecte.IsStoreError(err))
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestRequestKeepsOwnUpdate(t *testing.T) {
	u := guarded(1, 2)
	req, err := sqlcte.CheckIfExists(objects, u, 1)
	require.NoError(t, err)
	before, err := req.Compile()
	require.NoError(t, err)

	// Changes made after wrapping do not leak into the request.
	u.Set("owner", "other").Returning("*")
	after, err := req.Compile()
	require.NoError(t, err)
	q1, a1 := before.Query()
	q2, a2 := after.Query()
	assert.Equal(t, q1, q2)
	assert.Equal(t, a1, a2)

	// Compiling leaves the caller's builder as it was.
	assert.True(t, u.HasReturning())
	_, err = sqlcte.CheckIfExists(objects, u, 1)
	assert.True(t, errors.Is(err, sqlcte.ErrReturningClause))
}

func TestUUIDKey(t *testing.T) {
	var (
		id    = uuid.New()
		table = sqlcte.NewTable("jobs", sql.Column[uuid.UUID]("id"))
	)
	u := sql.Dialect(dialect.Postgres).
		Update("jobs").
		Set("state", "running").
		Where(sql.And(table.Key.EQ(id), sql.EQ("state", "pending")))
	req, err := table.UpdateIf(id, u)
	require.NoError(t, err)
	assert.Equal(t, id, req.Key())

	stmt, err := req.Compile()
	require.NoError(t, err)
	_, args := stmt.Query()
	assert.Equal(t, []any{id, "running", id, "pending"}, args)
}
