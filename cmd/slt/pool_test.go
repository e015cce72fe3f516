package main

import (
	"context"
	"testing"

	"github.com/sqltestbench/slt"
)

func TestNewAdapterUnsupportedEngineIsError(t *testing.T) {
	opts := &options{Engine: "oracle"}
	_, err := newAdapter(opts, "db1", slt.DefaultConnection)
	if err == nil {
		t.Fatal("expected an error for an unsupported engine")
	}
}

func TestNewAdapterSqliteOpensInMemory(t *testing.T) {
	opts := &options{Engine: "sqlite"}
	adapter, err := newAdapter(opts, "db1", slt.DefaultConnection)
	if err != nil {
		t.Fatalf("newAdapter: %v", err)
	}
	defer adapter.Shutdown(context.Background())
	if adapter.EngineName() != "sqlite" {
		t.Errorf("EngineName() = %q, want sqlite", adapter.EngineName())
	}
}

func TestCreateAndDropDatabaseSqliteAreNoOps(t *testing.T) {
	opts := &options{Engine: "sqlite"}
	if err := createDatabase(context.Background(), opts, "anything"); err != nil {
		t.Errorf("createDatabase: %v", err)
	}
	if err := dropDatabase(context.Background(), opts, "anything"); err != nil {
		t.Errorf("dropDatabase: %v", err)
	}
}

func TestCreateDatabaseUnsupportedEngineIsError(t *testing.T) {
	opts := &options{Engine: "oracle"}
	if err := createDatabase(context.Background(), opts, "db1"); err == nil {
		t.Fatal("expected an error for an unsupported engine")
	}
}

func TestNewPoolLazilyUsesNewAdapter(t *testing.T) {
	opts := &options{Engine: "sqlite"}
	pool := newPool(opts, "db1")
	adapter, err := pool.Get(context.Background(), slt.DefaultConnection)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer pool.Shutdown(context.Background())
	if adapter.EngineName() != "sqlite" {
		t.Errorf("EngineName() = %q, want sqlite", adapter.EngineName())
	}
}
