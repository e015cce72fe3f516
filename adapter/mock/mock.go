// Package mock implements slt.Adapter over github.com/DATA-DOG/go-sqlmock,
// so the runner, harness, and CLI packages can be exercised in tests without
// a real database. It embeds adapter/sqlbase.Core and so shares the same
// query/statement classification and cell rendering as every real engine.
package mock

import (
	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/sqltestbench/slt/adapter/sqlbase"
)

// Adapter is a sqlbase.Core backed by a sqlmock connection, plus the
// sqlmock.Sqlmock handle tests use to set up expectations.
type Adapter struct {
	*sqlbase.Core
	Mock sqlmock.Sqlmock
}

// New opens a sqlmock database and returns the Adapter together with its
// expectation-setting handle. engine names the EngineName() a test wants to
// report, e.g. to exercise skipif/onlyif condition handling.
func New(engine string) (*Adapter, error) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		return nil, err
	}
	return &Adapter{
		Core: &sqlbase.Core{DB: db, Engine: engine},
		Mock: mock,
	}, nil
}
