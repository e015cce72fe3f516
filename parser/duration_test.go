package parser

import (
	"testing"
	"time"
)

func TestParseDurationDelegatesToStdlib(t *testing.T) {
	cases := map[string]time.Duration{
		"500ms": 500 * time.Millisecond,
		"5s":    5 * time.Second,
		"2m":    2 * time.Minute,
		"1h":    time.Hour,
		"1h30m": time.Hour + 30*time.Minute,
	}
	for in, want := range cases {
		got, err := parseDuration(in)
		if err != nil {
			t.Errorf("parseDuration(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseDuration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDurationDaysAndWeeks(t *testing.T) {
	cases := map[string]time.Duration{
		"3d": 3 * 24 * time.Hour,
		"1w": 7 * 24 * time.Hour,
		"2w": 14 * 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := parseDuration(in)
		if err != nil {
			t.Errorf("parseDuration(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseDuration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "5x", "d"} {
		if _, err := parseDuration(in); err == nil {
			t.Errorf("parseDuration(%q) should have failed", in)
		}
	}
}

func TestFormatDurationRoundTrip(t *testing.T) {
	cases := []string{"500ms", "5s", "2m", "1h", "3d", "1w", "2w"}
	for _, in := range cases {
		d, err := parseDuration(in)
		if err != nil {
			t.Fatalf("parseDuration(%q): %v", in, err)
		}
		out := formatDuration(d)
		d2, err := parseDuration(out)
		if err != nil {
			t.Fatalf("parseDuration(formatDuration(%q)=%q): %v", in, out, err)
		}
		if d2 != d {
			t.Errorf("round trip %q -> %q -> %v, want %v", in, out, d2, d)
		}
	}
}
