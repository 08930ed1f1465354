package sql

// Predicate is a where predicate.
type Predicate struct {
	Builder
	op      string       // "AND" or "OR" for compound predicates.
	members []*Predicate // operands of a compound predicate.
	fns     []func(*Builder)
}

// P creates a new predicate from the given render callbacks.
//
//	P(func(b *Builder) {
//		b.Ident("gen").WriteString(" % 2 = 0")
//	})
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// Append appends a new function to the predicate callbacks.
// The callback list is executed on call to Query.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// Query returns query representation of a predicate.
func (p *Predicate) Query() (string, []any) {
	if p.Len() > 0 || len(p.args) > 0 {
		p.Reset()
	}
	for _, f := range p.fns {
		f(&p.Builder)
	}
	return p.String(), p.args
}

// render writes the predicate into b, leaving p untouched. Builders render
// their predicates this way, so a predicate shared by cloned builders can be
// rendered concurrently.
func (p *Predicate) render(b *Builder) {
	for _, f := range p.fns {
		f(b)
	}
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" = ").Arg(value)
	})
}

// NEQ returns a "<>" predicate.
func NEQ(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" <> ").Arg(value)
	})
}

// LT returns a "<" predicate.
func LT(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" < ").Arg(value)
	})
}

// LTE returns a "<=" predicate.
func LTE(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" <= ").Arg(value)
	})
}

// GT returns a ">" predicate.
func GT(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" > ").Arg(value)
	})
}

// GTE returns a ">=" predicate.
func GTE(col string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" >= ").Arg(value)
	})
}

// In returns the `IN` predicate. An empty list never matches.
func In(col string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.Ident(col).WriteString(" IN ").Nested(func(b *Builder) {
			b.Args(args...)
		})
	})
}

// NotIn returns the `NOT IN` predicate. An empty list always matches.
func NotIn(col string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("TRUE")
			return
		}
		b.Ident(col).WriteString(" NOT IN ").Nested(func(b *Builder) {
			b.Args(args...)
		})
	})
}

// IsNull returns the `IS NULL` predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NULL")
	})
}

// NotNull returns the `IS NOT NULL` predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NOT NULL")
	})
}

// ColumnsEQ returns a "=" predicate between two columns.
func ColumnsEQ(col1, col2 string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col1).WriteString(" = ").Ident(col2)
	})
}

// Not wraps the given predicate with the not predicate.
//
//	Not(Or(EQ("name", "foo"), EQ("name", "bar")))
func Not(pred *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT ").Nested(pred.render)
	})
}

// And combines all given predicates with AND between them.
// Nested AND predicates are flattened.
func And(preds ...*Predicate) *Predicate {
	return compound("AND", preds)
}

// Or combines all given predicates with OR between them.
// Nested OR predicates are flattened.
func Or(preds ...*Predicate) *Predicate {
	return compound("OR", preds)
}

func compound(op string, preds []*Predicate) *Predicate {
	flat := make([]*Predicate, 0, len(preds))
	for _, p := range preds {
		switch {
		case p == nil:
		case p.op == op:
			flat = append(flat, p.members...)
		default:
			flat = append(flat, p)
		}
	}
	p := P()
	p.op = op
	p.Append(func(b *Builder) {
		for i, c := range flat {
			if i > 0 {
				b.WriteString(" " + op + " ")
			}
			if c.op != "" && len(flat) > 1 {
				b.Nested(c.render)
				continue
			}
			c.render(b)
		}
	})
	p.members = flat
	return p
}

// Column is a typed column name. Its value type binds the predicates
// built from it to the Go type stored in the column.
//
//	var Gen = sql.Column[int]("gen")
//	u.Where(Gen.GTE(2))
type Column[T any] string

// Name returns the column name.
func (c Column[T]) Name() string { return string(c) }

// EQ returns a predicate that checks if the column equals the given value.
func (c Column[T]) EQ(v T) *Predicate { return EQ(string(c), v) }

// NEQ returns a predicate that checks if the column does not equal the given value.
func (c Column[T]) NEQ(v T) *Predicate { return NEQ(string(c), v) }

// GT returns a predicate that checks if the column is greater than the given value.
func (c Column[T]) GT(v T) *Predicate { return GT(string(c), v) }

// GTE returns a predicate that checks if the column is greater than or equal to the given value.
func (c Column[T]) GTE(v T) *Predicate { return GTE(string(c), v) }

// LT returns a predicate that checks if the column is less than the given value.
func (c Column[T]) LT(v T) *Predicate { return LT(string(c), v) }

// LTE returns a predicate that checks if the column is less than or equal to the given value.
func (c Column[T]) LTE(v T) *Predicate { return LTE(string(c), v) }

// In returns a predicate that checks if the column value is in the given list.
func (c Column[T]) In(vs ...T) *Predicate { return In(string(c), anys(vs)...) }

// NotIn returns a predicate that checks if the column value is not in the given list.
func (c Column[T]) NotIn(vs ...T) *Predicate { return NotIn(string(c), anys(vs)...) }

// IsNull returns a predicate that checks if the column is NULL.
func (c Column[T]) IsNull() *Predicate { return IsNull(string(c)) }

// NotNull returns a predicate that checks if the column is not NULL.
func (c Column[T]) NotNull() *Predicate { return NotNull(string(c)) }

// Set sets the column to the given value on the update builder.
func (c Column[T]) Set(u *UpdateBuilder, v T) *UpdateBuilder { return u.Set(string(c), v) }

func anys[T any](vs []T) []any {
	args := make([]any, len(vs))
	for i := range vs {
		args[i] = vs[i]
	}
	return args
}
