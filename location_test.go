package slt

import "testing"

func TestLocationString(t *testing.T) {
	loc := NewLocation("a.slt")
	if got, want := loc.String(), "a.slt:0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	loc = loc.NextLine().NextLine()
	if got, want := loc.String(), "a.slt:2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLocationIncludeChain(t *testing.T) {
	parent := NewLocation("main.slt").NextLine()
	child := parent.Include("included.slt")

	if child.File != "included.slt" || child.Line != 0 {
		t.Fatalf("unexpected child location: %+v", child)
	}
	if child.IncludedFrom == nil || *child.IncludedFrom != parent {
		t.Fatalf("IncludedFrom = %+v, want %+v", child.IncludedFrom, parent)
	}

	want := "included.slt:0\nat main.slt:1"
	if got := child.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNormalizeLocation(t *testing.T) {
	parent := NewLocation("/tmp/xyz123/main.slt").NextLine()
	child := parent.Include("/tmp/xyz123/sub/included.slt")

	norm := NormalizeLocation(child, "<sentinel>")
	if norm.File != "<sentinel>" || norm.IncludedFrom.File != "<sentinel>" {
		t.Fatalf("normalization left real paths: %+v", norm)
	}
	if norm.Line != child.Line || norm.IncludedFrom.Line != child.IncludedFrom.Line {
		t.Fatalf("normalization changed line numbers: %+v", norm)
	}
}
