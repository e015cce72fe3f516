// Package mssql implements slt.Adapter over
// github.com/microsoft/go-mssqldb, with a DSN builder grounded on the
// teacher's database/mssql.mssqlBuildDSN.
package mssql

import (
	"database/sql"
	"fmt"
	"net/url"

	mssqldb "github.com/microsoft/go-mssqldb"

	"github.com/sqltestbench/slt/adapter/sqlbase"
)

// Config mirrors the connection fields the teacher's database.Config
// carries for mssql, trimmed to what a test harness needs.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DbName   string
}

// Adapter wraps sqlbase.Core to report go-mssqldb's numeric SQL Server
// error codes.
type Adapter struct {
	*sqlbase.Core
}

// ErrorSQLState extracts the SQL Server error number from err, if it's an
// mssql.Error.
func (Adapter) ErrorSQLState(err error) (string, bool) {
	if msErr, ok := err.(mssqldb.Error); ok {
		return fmt.Sprintf("%d", msErr.Number), true
	}
	return "", false
}

// New opens a mssql connection for cfg and returns the Adapter.
func New(cfg Config) (*Adapter, error) {
	db, err := sql.Open("sqlserver", buildDSN(cfg))
	if err != nil {
		return nil, err
	}
	return &Adapter{Core: &sqlbase.Core{DB: db, Engine: "mssql"}}, nil
}

func buildDSN(cfg Config) string {
	query := url.Values{}
	query.Add("database", cfg.DbName)
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}
