// Package testutil collects fixture helpers shared by this repository's own
// package tests, grounded on the teacher's testutil package: a quiet-by-default
// slog init, a StripHeredoc text helper, and — generalized from the teacher's
// "build a *sql.DB-backed database.Database" fixtures — a helper that wires a
// mock-backed connection.Pool for exercising the runner without a real engine.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/sqltestbench/slt"
	"github.com/sqltestbench/slt/adapter/mock"
	"github.com/sqltestbench/slt/connection"
)

var stripHeredocRegex = regexp.MustCompilePOSIX("^\t*")

func init() {
	if os.Getenv("LOG_LEVEL") == "" {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
		slog.SetDefault(slog.New(handler))
	}
}

// StripHeredoc trims the leading newline and the leading tabs of every line
// from a Go raw-string literal used to embed a test script inline.
func StripHeredoc(heredoc string) string {
	heredoc = strings.TrimPrefix(heredoc, "\n")
	return stripHeredocRegex.ReplaceAllLiteralString(heredoc, "")
}

// NewMockAdapter opens a single sqlmock-backed adapter reporting engine as
// its EngineName.
func NewMockAdapter(t *testing.T, engine string) *mock.Adapter {
	t.Helper()
	a, err := mock.New(engine)
	if err != nil {
		t.Fatalf("testutil: opening mock adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

// NewMockPool builds a connection.Pool whose every named connection is
// backed by its own mock.Adapter reporting engine, recording each created
// adapter in adapters (keyed by connection name) so a test can reach its
// sqlmock.Sqlmock handle to set up expectations.
func NewMockPool(t *testing.T, engine string, adapters map[slt.ConnectionName]*mock.Adapter) *connection.Pool {
	t.Helper()
	return connection.NewPool(func(name slt.ConnectionName) (slt.Adapter, error) {
		a, err := mock.New(engine)
		if err != nil {
			return nil, err
		}
		if adapters != nil {
			adapters[name] = a
		}
		return a, nil
	})
}
