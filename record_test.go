package slt

import "testing"

func TestErrorMatcherEmptySourceMatchesAnything(t *testing.T) {
	m, err := NewErrorMatcher("")
	if err != nil {
		t.Fatalf("NewErrorMatcher: %v", err)
	}
	if !m.Present {
		t.Fatal("empty-source matcher should still be Present")
	}
	if !m.Matches("anything at all") {
		t.Fatal("empty-source matcher should match any text")
	}
}

func TestErrorMatcherRegex(t *testing.T) {
	m, err := NewErrorMatcher("^syntax error near .*$")
	if err != nil {
		t.Fatalf("NewErrorMatcher: %v", err)
	}
	if !m.Matches("syntax error near 'foo'") {
		t.Error("expected match")
	}
	if m.Matches("unrelated failure") {
		t.Error("expected no match")
	}
}

func TestErrorMatcherInvalidRegex(t *testing.T) {
	if _, err := NewErrorMatcher("("); err == nil {
		t.Fatal("expected error compiling invalid regex")
	}
}

func TestErrorMatcherEqual(t *testing.T) {
	a, _ := NewErrorMatcher("foo.*")
	b, _ := NewErrorMatcher("foo.*")
	if !a.Equal(b) {
		t.Fatal("matchers with identical source should be Equal")
	}
	c, _ := NewErrorMatcher("bar.*")
	if a.Equal(c) {
		t.Fatal("matchers with different source should not be Equal")
	}
}

func TestRecordLocation(t *testing.T) {
	loc := NewLocation("x.slt").NextLine()
	rec := NewStatement(loc, nil, DefaultConnection, ErrorMatcher{Present: true}, nil, "select 1")
	if rec.Location() != loc {
		t.Fatalf("Location() = %+v, want %+v", rec.Location(), loc)
	}

	var r Record = rec
	if _, ok := r.(StatementRecord); !ok {
		t.Fatal("StatementRecord should satisfy Record")
	}
}

func TestInjectedRecordRoundsTripThroughRecordInterface(t *testing.T) {
	loc := NewLocation("x.slt")
	inj := NewInjected(loc, BeginInclude, "sub.slt")
	var r Record = inj
	got, ok := r.(InjectedRecord)
	if !ok {
		t.Fatal("InjectedRecord should satisfy Record")
	}
	if got.Kind != BeginInclude || got.Path != "sub.slt" {
		t.Fatalf("unexpected InjectedRecord: %+v", got)
	}
}
