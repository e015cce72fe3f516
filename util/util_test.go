package util

import "testing"

func TestTransformSlice(t *testing.T) {
	in := []int{1, 2, 3}
	out := TransformSlice(in, func(n int) string {
		return string(rune('a' + n - 1))
	})
	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %q, want %q", i, out[i], want[i])
		}
	}
}

func TestTransformSliceEmptyInput(t *testing.T) {
	out := TransformSlice([]int(nil), func(n int) int { return n })
	if len(out) != 0 {
		t.Errorf("got %v, want empty", out)
	}
}

func TestCanonicalMapIterYieldsSortedKeys(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	var keys []string
	for k, v := range CanonicalMapIter(m) {
		keys = append(keys, k)
		if m[k] != v {
			t.Errorf("value for %q = %d, want %d", k, v, m[k])
		}
	}
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestCanonicalMapIterStopsEarly(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	var seen int
	for range CanonicalMapIter(m) {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("expected the iterator to stop after the first yield, saw %d", seen)
	}
}
