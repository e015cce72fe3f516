// Package mysql implements slt.Adapter over github.com/go-sql-driver/mysql,
// with a DSN builder grounded on the teacher's database/mysql.mysqlBuildDSN.
package mysql

import (
	"database/sql"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"github.com/sqltestbench/slt/adapter/sqlbase"
)

// Config mirrors the connection fields the teacher's database.Config
// carries for mysql, trimmed to what a test harness needs.
type Config struct {
	Host     string
	Port     int
	Socket   string
	User     string
	Password string
	DbName   string
}

// Adapter wraps sqlbase.Core to report go-sql-driver/mysql's numeric error
// codes as SQLSTATE-shaped strings.
type Adapter struct {
	*sqlbase.Core
}

// ErrorSQLState extracts the MySQL error number from err, if it's a
// *mysql.MySQLError, rendered as a decimal string (MySQL errors are
// numeric, not SQLSTATE text, unlike postgres/mssql).
func (Adapter) ErrorSQLState(err error) (string, bool) {
	if myErr, ok := err.(*driver.MySQLError); ok {
		return fmt.Sprintf("%d", myErr.Number), true
	}
	return "", false
}

// New opens a mysql connection for cfg and returns the Adapter.
func New(cfg Config) (*Adapter, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, err
	}
	return &Adapter{Core: &sqlbase.Core{DB: db, Engine: "mysql"}}, nil
}

func buildDSN(cfg Config) string {
	c := driver.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.DBName = cfg.DbName
	if cfg.Socket == "" {
		c.Net = "tcp"
		c.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	} else {
		c.Net = "unix"
		c.Addr = cfg.Socket
	}
	return c.FormatDSN()
}
