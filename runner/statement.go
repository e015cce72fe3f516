package runner

import (
	"context"
	"strconv"

	"github.com/sqltestbench/slt"
)

// runStatement implements spec.md §4.4.1.
func (r *Runner) runStatement(ctx context.Context, rec slt.StatementRecord) error {
	if r.State.shouldSkip(rec.Conditions) {
		return nil
	}

	sql, err := r.substitute(rec.Location(), rec.SQL)
	if err != nil {
		return err
	}

	conn := rec.Connection
	if conn == slt.DefaultConnection {
		conn = r.State.ActiveConnection
	}
	adapter, err := r.Pool.Get(ctx, conn)
	if err != nil {
		return err
	}

	outcome, err := adapter.Run(ctx, sql)
	if err != nil {
		return r.checkExpectedError(rec.Location(), sql, rec.ExpectedError, err, slt.StatementFail)
	}

	if rec.ExpectedError.Present {
		return slt.NewTestError(slt.StatementOk, rec.Location(), sql, rec.ExpectedError.Source, "", nil)
	}

	count := outcome.RowsAffected
	if outcome.Rows != nil {
		count = uint64(len(outcome.Rows))
	}
	if rec.ExpectedCount != nil && count != *rec.ExpectedCount {
		return slt.NewTestError(slt.StatementResultMismatch, rec.Location(), sql,
			strconv.FormatUint(*rec.ExpectedCount, 10), strconv.FormatUint(count, 10), nil)
	}
	return nil
}

// checkExpectedError implements the Err(e) branch shared by statement, query,
// let and system execution: absent ExpectedError is failKind; an empty-source or
// matching regex passes; anything else is ErrorMismatch.
func (r *Runner) checkExpectedError(loc slt.Location, subject string, expected slt.ErrorMatcher, err error, failKind slt.TestErrorKind) error {
	if !expected.Present {
		return slt.NewTestError(failKind, loc, subject, "", err.Error(), err)
	}
	if expected.Matches(err.Error()) {
		return nil
	}
	return slt.NewTestError(slt.ErrorMismatch, loc, subject, expected.Source, err.Error(), err)
}
