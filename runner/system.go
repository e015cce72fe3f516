package runner

import (
	"context"

	"github.com/sqltestbench/slt"
)

// runSystem implements spec.md §4.4's System dispatch: substitutes the
// command, runs it via the adapter's shell, and compares exit status —
// zero on success when no ExpectedError, nonzero with a matching stderr
// when one is set.
func (r *Runner) runSystem(ctx context.Context, rec slt.SystemRecord) error {
	command, err := r.substitute(rec.Location(), rec.Command)
	if err != nil {
		return err
	}

	adapter, err := r.Pool.Get(ctx, r.State.ActiveConnection)
	if err != nil {
		return err
	}

	out, err := adapter.RunCommand(ctx, []string{"sh", "-c", command})
	if err != nil {
		return r.checkExpectedError(rec.Location(), command, rec.ExpectedError, err, slt.SystemCommandFail)
	}

	switch {
	case rec.ExpectedError.Present:
		if out.ExitCode == 0 {
			return slt.NewTestError(slt.StatementOk, rec.Location(), command, rec.ExpectedError.Source, "", nil)
		}
		if !rec.ExpectedError.Matches(out.Stderr) {
			return slt.NewTestError(slt.ErrorMismatch, rec.Location(), command, rec.ExpectedError.Source, out.Stderr, nil)
		}
		return nil
	case out.ExitCode != 0:
		return slt.NewTestError(slt.SystemCommandFail, rec.Location(), command, "exit 0", out.Stderr, nil)
	default:
		return nil
	}
}
