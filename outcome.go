// Package updatecte holds the result and error types of the conditional
// update construct implemented in dialect/sql/sqlcte.
package updatecte

// Outcome is the result of a conditional update. It is a closed set of three
// values; the zero value is never returned without an error.
type Outcome uint8

const (
	// RowMissing means no row matched the existence key. Nothing was
	// created or altered.
	RowMissing Outcome = iota + 1
	// RowFoundNotUpdated means the row exists but the guard predicate
	// rejected the update. The row is unchanged.
	RowFoundNotUpdated
	// RowUpdated means the row exists and the assignments were applied.
	RowUpdated
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case RowMissing:
		return "RowMissing"
	case RowFoundNotUpdated:
		return "RowFoundNotUpdated"
	case RowUpdated:
		return "RowUpdated"
	default:
		return "Outcome(invalid)"
	}
}

// Exists reports whether the row identified by the key exists.
func (o Outcome) Exists() bool {
	return o == RowFoundNotUpdated || o == RowUpdated
}

// Updated reports whether the update was applied.
func (o Outcome) Updated() bool {
	return o == RowUpdated
}

// Valid reports whether o is one of the three outcomes.
func (o Outcome) Valid() bool {
	return o >= RowMissing && o <= RowUpdated
}
