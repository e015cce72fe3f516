// Package sqlite implements slt.Adapter over modernc.org/sqlite, a pure-Go
// driver (no cgo), grounded on the teacher's database/sqlite3 package.
package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/sqltestbench/slt/adapter/sqlbase"
)

// Config names the SQLite database file to open. An empty Path or ":memory:"
// opens a private in-memory database, the common case for a harness worker.
type Config struct {
	Path string
}

// New opens cfg.Path (or an in-memory database) and returns the Adapter
// backed by it.
func New(cfg Config) (*sqlbase.Core, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &sqlbase.Core{DB: db, Engine: "sqlite"}, nil
}
