package sql

import (
	"errors"
	"strconv"
)

// SelectTable is a table selector, or a named result (common table
// expression) referenced in a FROM or JOIN clause.
type SelectTable struct {
	name string
	as   string
}

// Table returns a new table selector.
//
//	t1 := Table("objects").As("o")
//	return Select(t1.C("id"))
func Table(name string) *SelectTable {
	return &SelectTable{name: name}
}

// As adds the AS clause to the table selector.
func (s *SelectTable) As(alias string) *SelectTable {
	s.as = alias
	return s
}

// C returns a formatted string for the table column.
func (s *SelectTable) C(column string) string {
	name := s.name
	if s.as != "" {
		name = s.as
	}
	return name + "." + column
}

// Name returns the table name.
func (s *SelectTable) Name() string {
	return s.name
}

func (s *SelectTable) write(b *Builder) {
	b.Ident(s.name)
	if s.as != "" {
		b.WriteString(" AS ").Ident(s.as)
	}
}

// join table option.
type join struct {
	on    *Predicate
	kind  string
	table *SelectTable
}

// Selector is a builder for the `SELECT` statement.
type Selector struct {
	Builder
	columns []string
	from    *SelectTable
	joins   []join
	where   *Predicate
	limit   *int
}

// Select returns a new selector for the `SELECT` statement.
//
//	t1 := Table("found")
//	t2 := Table("updated")
//	Select(t1.C("id"), t2.C("id")).
//		From(t1).
//		LeftJoin(t2).
//		On(t1.C("id"), t2.C("id"))
func Select(columns ...string) *Selector {
	return &Selector{columns: columns}
}

// Columns returns the selected columns.
func (s *Selector) Columns() []string {
	return s.columns
}

// From sets the source of `FROM` clause.
func (s *Selector) From(t *SelectTable) *Selector {
	s.from = t
	return s
}

// Join appends a `JOIN` clause to the statement.
func (s *Selector) Join(t *SelectTable) *Selector {
	return s.join("JOIN", t)
}

// LeftJoin appends a `LEFT JOIN` clause to the statement.
func (s *Selector) LeftJoin(t *SelectTable) *Selector {
	return s.join("LEFT JOIN", t)
}

func (s *Selector) join(kind string, t *SelectTable) *Selector {
	s.joins = append(s.joins, join{kind: kind, table: t})
	return s
}

// On sets the `ON` clause of the last join to a column equality.
func (s *Selector) On(c1, c2 string) *Selector {
	return s.OnP(ColumnsEQ(c1, c2))
}

// OnP sets or appends the given predicate for the `ON` clause of the last join.
func (s *Selector) OnP(p *Predicate) *Selector {
	if len(s.joins) == 0 {
		s.AddError(errNoJoin)
		return s
	}
	j := &s.joins[len(s.joins)-1]
	if j.on != nil {
		p = And(j.on, p)
	}
	j.on = p
	return s
}

// Where sets or appends the given predicate to the statement.
func (s *Selector) Where(p *Predicate) *Selector {
	if s.where != nil {
		p = And(s.where, p)
	}
	s.where = p
	return s
}

// Limit adds the `LIMIT` clause to the `SELECT` statement.
func (s *Selector) Limit(limit int) *Selector {
	s.limit = &limit
	return s
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	b := s.Builder.clone()
	b.WriteString("SELECT ")
	if len(s.columns) > 0 {
		b.IdentComma(s.columns...)
	} else {
		b.WriteByte('*')
	}
	if s.from != nil {
		b.WriteString(" FROM ")
		s.from.write(&b)
	}
	for _, j := range s.joins {
		b.Pad().WriteString(j.kind).Pad()
		j.table.write(&b)
		if j.on != nil {
			b.WriteString(" ON ")
			j.on.render(&b)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.render(&b)
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*s.limit))
	}
	return b.String(), b.args
}

// Err returns the errors recorded on the selector, including a missing
// FROM clause.
func (s *Selector) Err() error {
	if s.from == nil {
		return errors.Join(s.Builder.Err(), errNoTable)
	}
	return s.Builder.Err()
}
