// Package compare implements the result-comparison pipeline a query
// record's produced rows go through before being checked against its
// expected-results block: column-type validation, flattening,
// normalization, sorting, optional MD5 hashing, and a final validator.
package compare

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/sqltestbench/slt"
)

// ColumnValidator checks a query's declared types against the types the
// adapter actually reported.
type ColumnValidator func(declared, actual []slt.ColumnType) bool

// DefaultColumnValidator accepts a declared Any (`?`) against any actual
// type, and otherwise requires the two lists to agree element-wise and in
// length.
func DefaultColumnValidator(declared, actual []slt.ColumnType) bool {
	if len(declared) != len(actual) {
		return false
	}
	for i, d := range declared {
		if slt.DefaultAlphabet.IsAny(d) {
			continue
		}
		if d.Char != actual[i].Char {
			return false
		}
	}
	return true
}

// StrictColumnValidator requires element-wise equality including length;
// Any is not a wildcard.
func StrictColumnValidator(declared, actual []slt.ColumnType) bool {
	if len(declared) != len(actual) {
		return false
	}
	for i, d := range declared {
		if d.Char != actual[i].Char {
			return false
		}
	}
	return true
}

// Normalizer maps one cell's raw string form to its comparison form.
// DefaultNormalizer trims the cell and collapses internal whitespace runs
// to a single space.
type Normalizer func(string) string

// DefaultNormalizer trims leading/trailing whitespace and collapses runs of
// ASCII whitespace elsewhere in the string to a single space.
func DefaultNormalizer(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// Validator makes the final produced-vs-expected call. DefaultValidator is
// element-wise string equality.
type Validator func(produced, expected []string) bool

// DefaultValidator reports whether produced and expected are the same
// length and equal element-wise.
func DefaultValidator(produced, expected []string) bool {
	if len(produced) != len(expected) {
		return false
	}
	for i := range produced {
		if produced[i] != expected[i] {
			return false
		}
	}
	return true
}

// Flatten renders a query's rows into comparison lines: under ValueSort
// every cell is its own line; otherwise each row becomes one
// space-joined line. Each cell passes through normalize first.
func Flatten(rows [][]string, mode slt.SortMode, normalize Normalizer) []string {
	if normalize == nil {
		normalize = DefaultNormalizer
	}
	var lines []string
	if mode == slt.ValueSort {
		for _, row := range rows {
			for _, cell := range row {
				lines = append(lines, normalize(cell))
			}
		}
		return lines
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = normalize(cell)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// Sort reorders lines in place for RowSort/ValueSort; NoSort is a no-op.
func Sort(lines []string, mode slt.SortMode) {
	if mode == slt.RowSort || mode == slt.ValueSort {
		sort.Strings(lines)
	}
}

// HashThreshold replaces lines with their MD5-hashed summary form when the
// count reaches threshold (0 disables hashing). The summary is
// `"<n> values hashing to <32-hex>"`, computed over the lines joined by
// "\n" plus a trailing "\n", matching the shape a hand-authored
// expected-results block uses so it can be compared directly as text.
func HashThreshold(lines []string, threshold uint64) []string {
	if threshold == 0 || uint64(len(lines)) < threshold {
		return lines
	}
	sum := md5.Sum([]byte(strings.Join(lines, "\n") + "\n"))
	return []string{fmt.Sprintf("%d values hashing to %s", len(lines), hex.EncodeToString(sum[:]))}
}

// Diff renders a unified-diff-style explanation of a mismatch between
// produced and expected lines, used in QueryResultMismatch error text.
func Diff(produced, expected []string) string {
	var b strings.Builder
	max := len(produced)
	if len(expected) > max {
		max = len(expected)
	}
	for i := 0; i < max; i++ {
		var p, e string
		if i < len(produced) {
			p = produced[i]
		}
		if i < len(expected) {
			e = expected[i]
		}
		if p == e {
			continue
		}
		if i < len(expected) {
			fmt.Fprintf(&b, "-%s\n", e)
		}
		if i < len(produced) {
			fmt.Fprintf(&b, "+%s\n", p)
		}
	}
	return b.String()
}

// EffectiveSortMode resolves a query's own sort mode (if it set one)
// against the runner's ambient default, falling back to NoSort.
func EffectiveSortMode(queryMode *slt.SortMode, ambient *slt.SortMode) slt.SortMode {
	if queryMode != nil {
		return *queryMode
	}
	if ambient != nil {
		return *ambient
	}
	return slt.NoSort
}

// Compare flattens and normalizes rows, sorts both sides by mode, applies the
// hash threshold to the produced lines, and reports through validate whether
// produced matches expected. Column-type validation is not part of Compare;
// callers run a ColumnValidator separately.
func Compare(rows [][]string, expected []string, mode slt.SortMode, threshold uint64, normalize Normalizer, validate Validator) (produced []string, ok bool) {
	if validate == nil {
		validate = DefaultValidator
	}
	produced = Flatten(rows, mode, normalize)
	Sort(produced, mode)
	expectedSorted := append([]string(nil), expected...)
	Sort(expectedSorted, mode)
	produced = HashThreshold(produced, threshold)
	return produced, validate(produced, expectedSorted)
}
