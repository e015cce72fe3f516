package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandFilesDeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.slt", "a.slt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("halt\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	files, err := expandFiles([]string{
		filepath.Join(dir, "*.slt"),
		filepath.Join(dir, "a.slt"),
	})
	if err != nil {
		t.Fatalf("expandFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.slt"), filepath.Join(dir, "b.slt")}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestExpandFilesNonexistentPatternPassesThrough(t *testing.T) {
	files, err := expandFiles([]string{"/nonexistent/path/nope.slt"})
	if err != nil {
		t.Fatalf("expandFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "/nonexistent/path/nope.slt" {
		t.Errorf("got %v, want the literal pattern to pass through", files)
	}
}

func TestExpandFilesInvalidGlobIsError(t *testing.T) {
	_, err := expandFiles([]string{"["})
	if err == nil {
		t.Fatal("expected an error for a malformed glob pattern")
	}
}
