// Package postgres implements slt.Adapter over github.com/lib/pq, with a
// DSN builder grounded on the teacher's database/postgres.postgresBuildDSN.
package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"

	"github.com/sqltestbench/slt/adapter/sqlbase"
)

// Config mirrors the connection fields the teacher's database.Config
// carries for postgres, trimmed to what a test harness needs.
type Config struct {
	Host     string
	Port     int
	Socket   string
	User     string
	Password string
	DbName   string
	SslMode  string
}

// Adapter wraps sqlbase.Core to report lib/pq's SQLSTATE codes.
type Adapter struct {
	*sqlbase.Core
}

// ErrorSQLState extracts lib/pq's 5-character SQLSTATE code from err, if
// it's a *pq.Error.
func (Adapter) ErrorSQLState(err error) (string, bool) {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code), true
	}
	return "", false
}

// New opens a postgres connection for cfg and returns the Adapter.
func New(cfg Config) (*Adapter, error) {
	db, err := sql.Open("postgres", buildDSN(cfg))
	if err != nil {
		return nil, err
	}
	return &Adapter{Core: &sqlbase.Core{DB: db, Engine: "postgres"}}, nil
}

func buildDSN(cfg Config) string {
	host := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var options []string
	if cfg.Socket != "" {
		host = ""
		options = append(options, fmt.Sprintf("host=%s", cfg.Socket))
	}
	if cfg.SslMode != "" {
		options = append(options, fmt.Sprintf("sslmode=%s", cfg.SslMode))
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), host, cfg.DbName, strings.Join(options, "&"))
}
