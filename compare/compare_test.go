package compare

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/sqltestbench/slt"
)

func typesOf(chars string) []slt.ColumnType {
	var types []slt.ColumnType
	for _, c := range chars {
		tt, _ := slt.DefaultAlphabet.FromChar(byte(c))
		types = append(types, tt)
	}
	return types
}

func TestDefaultColumnValidatorAnyWildcard(t *testing.T) {
	declared := typesOf("?I")
	actual := typesOf("TI")
	if !DefaultColumnValidator(declared, actual) {
		t.Error("expected Any to wildcard-match any actual type")
	}
}

func TestDefaultColumnValidatorMismatch(t *testing.T) {
	declared := typesOf("I")
	actual := typesOf("T")
	if DefaultColumnValidator(declared, actual) {
		t.Error("expected mismatched concrete types to fail")
	}
}

func TestDefaultColumnValidatorLengthMismatch(t *testing.T) {
	if DefaultColumnValidator(typesOf("I"), typesOf("II")) {
		t.Error("expected length mismatch to fail")
	}
}

func TestStrictColumnValidatorRejectsAny(t *testing.T) {
	declared := typesOf("?")
	actual := typesOf("I")
	if StrictColumnValidator(declared, actual) {
		t.Error("StrictColumnValidator should not treat '?' as wildcard")
	}
}

func TestDefaultNormalizerCollapsesWhitespace(t *testing.T) {
	got := DefaultNormalizer("  a   b\tc \n")
	if got != "a b c" {
		t.Errorf("DefaultNormalizer() = %q", got)
	}
}

func TestFlattenNoSortJoinsRowBySpace(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"c", "d"}}
	lines := Flatten(rows, slt.NoSort, nil)
	want := []string{"a b", "c d"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFlattenValueSortSplitsCells(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"c"}}
	lines := Flatten(rows, slt.ValueSort, nil)
	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
}

func TestSortRowSortOrdersLines(t *testing.T) {
	lines := []string{"c", "a", "b"}
	Sort(lines, slt.RowSort)
	want := []string{"a", "b", "c"}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("got %v, want %v", lines, want)
		}
	}
}

func TestSortNoSortLeavesOrderUnchanged(t *testing.T) {
	lines := []string{"c", "a", "b"}
	Sort(lines, slt.NoSort)
	want := []string{"c", "a", "b"}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("got %v, want %v", lines, want)
		}
	}
}

func TestHashThresholdBelowThresholdLeavesLinesAlone(t *testing.T) {
	lines := []string{"a", "b"}
	got := HashThreshold(lines, 10)
	if len(got) != 2 {
		t.Fatalf("got %v, want unchanged", got)
	}
}

func TestHashThresholdAtThresholdHashes(t *testing.T) {
	lines := []string{"a", "b", "c"}
	got := HashThreshold(lines, 3)
	if len(got) != 1 {
		t.Fatalf("got %v, want a single hashed summary line", got)
	}
	sum := md5.Sum([]byte("a\nb\nc\n"))
	want := fmt.Sprintf("3 values hashing to %s", hex.EncodeToString(sum[:]))
	if got[0] != want {
		t.Errorf("HashThreshold() = %q, want %q", got[0], want)
	}
}

func TestHashThresholdZeroDisables(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "x"
	}
	got := HashThreshold(lines, 0)
	if len(got) != 100 {
		t.Fatalf("got %d lines, want 100 (hashing disabled)", len(got))
	}
}

func TestDiffMarksOnlyDifferingLines(t *testing.T) {
	produced := []string{"a", "X", "c"}
	expected := []string{"a", "b", "c"}
	diff := Diff(produced, expected)
	want := "-b\n+X\n"
	if diff != want {
		t.Errorf("Diff() = %q, want %q", diff, want)
	}
}

func TestDiffEqualProducesEmpty(t *testing.T) {
	lines := []string{"a", "b"}
	if diff := Diff(lines, lines); diff != "" {
		t.Errorf("Diff() = %q, want empty", diff)
	}
}

func TestEffectiveSortModePrefersQueryThenAmbientThenNoSort(t *testing.T) {
	rowSort := slt.RowSort
	valueSort := slt.ValueSort

	if got := EffectiveSortMode(&rowSort, &valueSort); got != slt.RowSort {
		t.Errorf("query mode should win, got %v", got)
	}
	if got := EffectiveSortMode(nil, &valueSort); got != slt.ValueSort {
		t.Errorf("ambient mode should be used when query has none, got %v", got)
	}
	if got := EffectiveSortMode(nil, nil); got != slt.NoSort {
		t.Errorf("default should be NoSort, got %v", got)
	}
}

func TestCompareMatchesAfterNormalizationAndSort(t *testing.T) {
	rows := [][]string{{"b"}, {"a"}}
	expected := []string{"a", "b"}
	produced, ok := Compare(rows, expected, slt.RowSort, 0, nil, nil)
	if !ok {
		t.Fatalf("Compare() ok = false, produced = %v", produced)
	}
}

func TestCompareDetectsMismatch(t *testing.T) {
	rows := [][]string{{"b"}, {"a"}}
	expected := []string{"a", "c"}
	_, ok := Compare(rows, expected, slt.RowSort, 0, nil, nil)
	if ok {
		t.Fatal("Compare() ok = true, want false for mismatched content")
	}
}
