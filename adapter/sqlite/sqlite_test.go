package sqlite

import (
	"testing"
)

func TestNewEmptyPathDefaultsToInMemory(t *testing.T) {
	core, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer core.DB.Close()
	if core.Engine != "sqlite" {
		t.Errorf("Engine = %q, want sqlite", core.Engine)
	}
}

func TestNewExplicitMemoryPath(t *testing.T) {
	core, err := New(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer core.DB.Close()
}
