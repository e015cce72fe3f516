package testutil

import "testing"

func TestStripHeredocTrimsLeadingNewlineAndTabs(t *testing.T) {
	in := "\n\t\tstatement ok\n\t\tCREATE TABLE t (a INT)\n\n\t\t"
	got := StripHeredoc(in)
	want := "statement ok\nCREATE TABLE t (a INT)\n\n"
	if got != want {
		t.Errorf("StripHeredoc() = %q, want %q", got, want)
	}
}
