package slt

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	loc := NewLocation("x.slt").NextLine()
	err := NewParseError(InvalidNumber, loc, "abc")
	want := `parse error at x.slt:1: invalid number: "abc"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorMessageNoDetail(t *testing.T) {
	loc := NewLocation("x.slt")
	err := NewParseError(UnexpectedEOF, loc, "")
	want := "parse error at x.slt:0: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	loc := NewLocation("x.slt")
	te := NewTestError(StatementFail, loc, "select 1", "", "", inner)

	if !errors.Is(te, inner) {
		t.Fatal("errors.Is should unwrap to the underlying adapter error")
	}
	if !strings.Contains(te.Error(), "statement failed") {
		t.Errorf("Error() = %q, want it to mention the kind", te.Error())
	}
}

func TestTestErrorKindStrings(t *testing.T) {
	kinds := []TestErrorKind{
		StatementOk, StatementFail, StatementResultMismatch, QueryFail,
		QueryResultMismatch, ErrorMismatch, ExpectedQueryGotStatement,
		LetRowCount, LetColumnCount, SystemCommandFail, SubstError,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "unknown test error" {
			t.Errorf("kind %d rendered as %q", k, s)
		}
		if seen[s] {
			t.Errorf("duplicate TestErrorKind label %q", s)
		}
		seen[s] = true
	}
}
