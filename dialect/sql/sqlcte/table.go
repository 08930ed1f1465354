package sqlcte

import (
	"errors"

	"github.com/syssam/updatecte"
	"github.com/syssam/updatecte/dialect/sql"
)

// Table identifies the table a conditional update targets, and its primary
// key column. K is the Go type of the primary key.
type Table[K comparable] struct {
	// Name of the table, optionally schema qualified ("public.objects").
	Name string
	// Key is the primary key column.
	Key sql.Column[K]
}

// NewTable returns a Table for the given name and primary key column.
func NewTable[K comparable](name string, key sql.Column[K]) Table[K] {
	return Table[K]{Name: name, Key: key}
}

// UpdateIf wraps u in a conditional update of the row identified by key.
// It is equivalent to CheckIfExists(t, u, key).
func (t Table[K]) UpdateIf(key K, u *sql.UpdateBuilder) (*Request[K], error) {
	return CheckIfExists(t, u, key)
}

func (t Table[K]) validate() error {
	switch {
	case t.Name == "":
		return updatecte.NewConfigurationError("", errors.New("missing table name"))
	case t.Key == "":
		return updatecte.NewConfigurationError(t.Name, errors.New("missing primary key column"))
	}
	return nil
}
