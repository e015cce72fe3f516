package runner

import (
	"context"
	"strconv"

	"github.com/sqltestbench/slt"
)

// runLet implements spec.md §4.4's Let dispatch. Unlike a `query` directive,
// a `let` binding has no `----` results block to compare against and no
// declared type string to validate: it just runs the inner SQL, reads the
// one row back, and binds its cells to VarNames. Reusing runQuery here would
// run that query through column-type validation and result comparison
// against an empty ExpectedResults, which fails the moment the query returns
// any row at all — so let executes the query directly instead.
func (r *Runner) runLet(ctx context.Context, rec slt.LetRecord) error {
	q := rec.Query
	if r.State.shouldSkip(q.Conditions) {
		return nil
	}

	sql, err := r.substitute(q.Location(), q.SQL)
	if err != nil {
		return err
	}

	conn := q.Connection
	if conn == slt.DefaultConnection {
		conn = r.State.ActiveConnection
	}
	adapter, err := r.Pool.Get(ctx, conn)
	if err != nil {
		return err
	}

	outcome, err := adapter.Run(ctx, sql)
	if err != nil {
		return r.checkExpectedError(q.Location(), sql, q.ExpectedError, err, slt.QueryFail)
	}
	if outcome.Rows == nil {
		return slt.NewTestError(slt.ExpectedQueryGotStatement, q.Location(), sql, "", "", nil)
	}

	if len(outcome.Rows) != 1 {
		return slt.NewTestError(slt.LetRowCount, rec.Location(), sql, "1 row", strconv.Itoa(len(outcome.Rows))+" rows", nil)
	}
	row := outcome.Rows[0]
	if len(row) != len(rec.VarNames) {
		return slt.NewTestError(slt.LetColumnCount, rec.Location(), sql,
			strconv.Itoa(len(rec.VarNames))+" columns", strconv.Itoa(len(row))+" columns", nil)
	}

	for i, name := range rec.VarNames {
		r.State.SetVar(name, row[i])
	}
	return nil
}
