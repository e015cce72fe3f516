package slt

// SortMode selects how a query's produced and expected lines are ordered
// before comparison.
type SortMode int

const (
	NoSort SortMode = iota
	RowSort
	ValueSort
)

// String renders the directive spelling used in script files.
func (m SortMode) String() string {
	switch m {
	case NoSort:
		return "nosort"
	case RowSort:
		return "rowsort"
	case ValueSort:
		return "valuesort"
	default:
		return "nosort"
	}
}

// ParseSortMode parses the directive spelling of a sort mode.
func ParseSortMode(s string) (SortMode, bool) {
	switch s {
	case "nosort":
		return NoSort, true
	case "rowsort":
		return RowSort, true
	case "valuesort":
		return ValueSort, true
	default:
		return NoSort, false
	}
}
