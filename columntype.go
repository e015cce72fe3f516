package slt

// ColumnType is one character of a query's declared type alphabet.
type ColumnType struct {
	Char byte
	Name string
}

// Alphabet maps type characters to ColumnType, preserving the canonical
// engine-supplied ordering so it can be echoed back during unparse.
type Alphabet struct {
	byChar map[byte]ColumnType
	order  []ColumnType
}

// NewAlphabet builds an Alphabet from an ordered list of column types. Later
// entries with a duplicate Char overwrite earlier ones in lookup, but the
// display order keeps the first occurrence's position.
func NewAlphabet(types ...ColumnType) Alphabet {
	a := Alphabet{byChar: make(map[byte]ColumnType, len(types))}
	for _, t := range types {
		if _, ok := a.byChar[t.Char]; !ok {
			a.order = append(a.order, t)
		}
		a.byChar[t.Char] = t
	}
	return a
}

// FromChar looks up the ColumnType for a single typestring character.
func (a Alphabet) FromChar(c byte) (ColumnType, bool) {
	t, ok := a.byChar[c]
	return t, ok
}

// IsAny reports whether t is the alphabet's wildcard type, if it declares one.
func (a Alphabet) IsAny(t ColumnType) bool {
	return t.Name == "Any"
}

const (
	TypeText    = "Text"
	TypeInteger = "Integer"
	TypeReal    = "Real"
	TypeAny     = "Any"
)

// DefaultAlphabet is the sqllogictest builtin type alphabet: T(ext),
// I(nteger), R(eal), and ?(Any), the last of which is a column-validation
// wildcard.
var DefaultAlphabet = NewAlphabet(
	ColumnType{Char: 'T', Name: TypeText},
	ColumnType{Char: 'I', Name: TypeInteger},
	ColumnType{Char: 'R', Name: TypeReal},
	ColumnType{Char: '?', Name: TypeAny},
)

// FormatTypeString re-renders a decoded type list back to its compact
// character form, used by Record unparsing.
func FormatTypeString(types []ColumnType) string {
	buf := make([]byte, len(types))
	for i, t := range types {
		buf[i] = t.Char
	}
	return string(buf)
}
