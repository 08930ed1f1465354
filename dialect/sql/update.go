package sql

import (
	"errors"
	"slices"
)

var (
	errNoTable   = errors.New("sql: missing table name")
	errNoJoin    = errors.New("sql: ON clause without a JOIN")
	errNoColumns = errors.New("sql: UPDATE without SET clause")
)

// UpdateBuilder is a builder for `UPDATE` statement.
type UpdateBuilder struct {
	Builder
	table     string
	columns   []string
	values    []any
	where     *Predicate
	returning []string
}

// Update creates a builder for the `UPDATE` statement.
//
//	Update("objects").
//		Set("runtime", "new").
//		Where(And(EQ("id", id), GTE("gen", 2)))
func Update(table string) *UpdateBuilder { return &UpdateBuilder{table: table} }

// Set sets a column to a given value. The value may be a Querier, in
// which case it is embedded as an expression.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Add adds a numeric value to the given column, treating NULL as 0.
func (u *UpdateBuilder) Add(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, P(func(b *Builder) {
		b.WriteString("COALESCE(").Ident(column).WriteString(", 0) + ").Arg(v)
	}))
	return u
}

// SetNull sets a column as null value.
func (u *UpdateBuilder) SetNull(column string) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, nil)
	return u
}

// Where adds a where predicate for update statement.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	if u.where != nil {
		p = And(u.where, p)
	}
	u.where = p
	return u
}

// Returning adds the `RETURNING` clause to the update statement.
// Supported by SQLite and PostgreSQL.
func (u *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	u.returning = columns
	return u
}

// TableName returns the table the statement updates.
func (u *UpdateBuilder) TableName() string {
	return u.table
}

// HasReturning reports if a `RETURNING` clause was added to the statement.
func (u *UpdateBuilder) HasReturning() bool {
	return len(u.returning) > 0
}

// HasWhere reports if a `WHERE` predicate was added to the statement.
func (u *UpdateBuilder) HasWhere() bool {
	return u.where != nil
}

// Columns returns the columns assigned by the SET clause, in order.
func (u *UpdateBuilder) Columns() []string {
	return slices.Clone(u.columns)
}

// Empty reports whether this builder does not contain update changes.
func (u *UpdateBuilder) Empty() bool {
	return len(u.columns) == 0
}

// Clone returns a copy of the builder. Changes made to the copy are not
// visible in u, and vice versa. Predicates and value expressions are shared.
func (u *UpdateBuilder) Clone() *UpdateBuilder {
	c := &UpdateBuilder{
		Builder:   u.Builder.clone(),
		table:     u.table,
		columns:   slices.Clone(u.columns),
		values:    slices.Clone(u.values),
		where:     u.where,
		returning: slices.Clone(u.returning),
	}
	return c
}

// Query returns query representation of an `UPDATE` statement.
func (u *UpdateBuilder) Query() (string, []any) {
	b := u.Builder.clone()
	b.WriteString("UPDATE ").Ident(u.table).WriteString(" SET ")
	for i, c := range u.columns {
		if i > 0 {
			b.Comma()
		}
		b.Ident(c).WriteString(" = ").Arg(u.values[i])
	}
	if u.where != nil {
		b.WriteString(" WHERE ")
		u.where.render(&b)
	}
	if len(u.returning) > 0 && (b.postgres() || b.sqlite()) {
		b.WriteString(" RETURNING ")
		b.IdentComma(u.returning...)
	}
	return b.String(), b.args
}

// Err returns the errors recorded on the builder, including a missing
// table name or an empty SET clause.
func (u *UpdateBuilder) Err() error {
	errs := []error{u.Builder.Err()}
	if u.table == "" {
		errs = append(errs, errNoTable)
	}
	if len(u.columns) == 0 {
		errs = append(errs, errNoColumns)
	}
	return errors.Join(errs...)
}
