package sqlcte

import (
	"fmt"

	"github.com/syssam/updatecte"
	"github.com/syssam/updatecte/dialect"
	"github.com/syssam/updatecte/dialect/sql"
)

// Names of the two common table expressions of the statement.
const (
	foundName   = "found"
	updatedName = "updated"
)

// Statement is a compiled conditional update.
type Statement struct {
	query   string
	args    []any
	dialect string
}

// Query implements the sql.Querier interface.
func (s *Statement) Query() (string, []any) {
	return s.query, s.args
}

// Dialect returns the dialect the statement was compiled for.
func (s *Statement) Dialect() string {
	return s.dialect
}

// Cacheable reports whether the statement text may be prepared once and
// reused for other requests. It is always false: the table, the key column
// and the shape of the caller's update are embedded in the text.
func (s *Statement) Cacheable() bool {
	return false
}

// Compile renders the request into a single statement. The row is looked
// up by key alone in "found", independent of the guard, and updated with the
// caller's full predicate in "updated". Both are evaluated by one statement,
// so no other transaction can interleave between the lookup and the update.
func (r *Request[K]) Compile() (*Statement, error) {
	d := r.update.Dialect()
	if d != dialect.Postgres {
		return nil, updatecte.NewConfigurationError(r.table.Name, fmt.Errorf("%w: %q", ErrUnsupportedDialect, d))
	}
	var (
		key     = r.table.Key.Name()
		found   = sql.Table(foundName)
		updated = sql.Table(updatedName)
	)
	b := &sql.Builder{}
	b.SetDialect(d)
	b.WriteString("WITH ").Ident(foundName).WriteString(" AS ").Nested(func(b *sql.Builder) {
		b.Join(sql.Select(key).
			From(sql.Table(r.table.Name)).
			Where(r.table.Key.EQ(r.key)))
	})
	b.Comma().Ident(updatedName).WriteString(" AS ").Nested(func(b *sql.Builder) {
		b.Join(r.update.Clone().Returning("*"))
	})
	b.Pad().Join(sql.Select(found.C(key), updated.C(key)).
		From(found).
		LeftJoin(updated).
		On(found.C(key), updated.C(key)))
	if err := b.Err(); err != nil {
		return nil, updatecte.NewConfigurationError(r.table.Name, err)
	}
	query, args := b.Query()
	return &Statement{query: query, args: args, dialect: d}, nil
}
