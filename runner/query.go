package runner

import (
	"context"
	"strings"

	"github.com/sqltestbench/slt"
	"github.com/sqltestbench/slt/compare"
)

// runQuery implements spec.md §4.4.2: run the query, validate its column
// types, and compare its rows against ExpectedResults.
func (r *Runner) runQuery(ctx context.Context, rec slt.QueryRecord) (slt.Outcome, error) {
	if r.State.shouldSkip(rec.Conditions) {
		return slt.Outcome{}, nil
	}

	sql, err := r.substitute(rec.Location(), rec.SQL)
	if err != nil {
		return slt.Outcome{}, err
	}

	conn := rec.Connection
	if conn == slt.DefaultConnection {
		conn = r.State.ActiveConnection
	}
	adapter, err := r.Pool.Get(ctx, conn)
	if err != nil {
		return slt.Outcome{}, err
	}

	outcome, err := adapter.Run(ctx, sql)
	if err != nil {
		return slt.Outcome{}, r.checkExpectedError(rec.Location(), sql, rec.ExpectedError, err, slt.QueryFail)
	}

	if rec.ExpectedError.Present {
		return slt.Outcome{}, slt.NewTestError(slt.StatementOk, rec.Location(), sql, rec.ExpectedError.Source, "", nil)
	}

	if outcome.Rows == nil {
		return slt.Outcome{}, slt.NewTestError(slt.ExpectedQueryGotStatement, rec.Location(), sql, "", "", nil)
	}

	if !r.State.columnValidator()(rec.Types, outcome.Types) {
		return outcome, slt.NewTestError(slt.QueryResultMismatch, rec.Location(), sql,
			slt.FormatTypeString(rec.Types), slt.FormatTypeString(outcome.Types), nil)
	}

	mode := r.State.effectiveSortMode(rec.SortMode)
	produced, ok := compare.Compare(outcome.Rows, rec.ExpectedResults, mode, r.State.HashThreshold, r.State.normalizer(), r.State.validator())
	if !ok {
		expectedSorted := append([]string(nil), rec.ExpectedResults...)
		compare.Sort(expectedSorted, mode)
		diff := compare.Diff(produced, expectedSorted)
		return outcome, slt.NewTestError(slt.QueryResultMismatch, rec.Location(), sql,
			strings.Join(expectedSorted, "\n"), diff, nil)
	}
	return outcome, nil
}
