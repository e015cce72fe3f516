package mock

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestNewReportsConfiguredEngineName(t *testing.T) {
	a, err := New("postgres")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown(context.Background())
	if a.EngineName() != "postgres" {
		t.Errorf("EngineName() = %q, want postgres", a.EngineName())
	}
}

func TestMockHandleDrivesExpectations(t *testing.T) {
	a, err := New("mock")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown(context.Background())

	a.Mock.ExpectExec("CREATE TABLE t").WillReturnResult(sqlmock.NewResult(0, 0))
	if _, err := a.Run(context.Background(), "CREATE TABLE t (a INT)"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := a.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
