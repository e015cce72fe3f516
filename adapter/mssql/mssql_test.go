package mssql

import (
	"strings"
	"testing"

	mssqldb "github.com/microsoft/go-mssqldb"
)

func TestBuildDSNIncludesHostPortAndDatabase(t *testing.T) {
	dsn := buildDSN(Config{Host: "db.internal", Port: 1433, User: "sa", Password: "s3cret!", DbName: "slt_1"})
	if !strings.HasPrefix(dsn, "sqlserver://sa:") {
		t.Errorf("buildDSN() = %q, want sqlserver scheme with user", dsn)
	}
	if !strings.Contains(dsn, "db.internal:1433") {
		t.Errorf("buildDSN() = %q, want host:port", dsn)
	}
	if !strings.Contains(dsn, "database=slt_1") {
		t.Errorf("buildDSN() = %q, want database query parameter", dsn)
	}
}

func TestErrorSQLStateExtractsNumber(t *testing.T) {
	a := Adapter{}
	code, ok := a.ErrorSQLState(mssqldb.Error{Number: 208, Message: "invalid object name"})
	if !ok || code != "208" {
		t.Errorf("ErrorSQLState() = %q, %v", code, ok)
	}
}

func TestErrorSQLStateRejectsOtherErrorTypes(t *testing.T) {
	a := Adapter{}
	if _, ok := a.ErrorSQLState(errGeneric{}); ok {
		t.Error("expected a non-mssql.Error to report ok=false")
	}
}

type errGeneric struct{}

func (errGeneric) Error() string { return "generic" }
