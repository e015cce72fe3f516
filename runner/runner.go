package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sqltestbench/slt"
	"github.com/sqltestbench/slt/connection"
	"github.com/sqltestbench/slt/parser"
	"github.com/sqltestbench/slt/substitution"
)

// Runner executes a flat record stream against a connection.Pool,
// maintaining the State that condition filtering, sort/hash modes, and
// variable substitution read and update as records are processed. A Runner
// is single-threaded and cooperative: Run must be called sequentially;
// parallelism across files belongs to package harness.
type Runner struct {
	State *State
	Pool  *connection.Pool
	Log   *slog.Logger
}

// New builds a Runner for engineName (always an implicit active label),
// backed by pool.
func New(pool *connection.Pool, engineName string, log *slog.Logger, labels ...string) *Runner {
	if log == nil {
		log = slog.Default()
	}
	state := NewState(engineName, labels...)
	log.Debug("runner configured", "active_labels", state.ActiveLabelNames())
	return &Runner{State: state, Pool: pool, Log: log}
}

// RunScript parses scriptText (no include expansion — see RunFile for
// that) and runs the resulting records via RunMulti.
func (r *Runner) RunScript(ctx context.Context, scriptText string, origin slt.Location) error {
	records, err := parser.Parse(scriptText, origin)
	if err != nil {
		return err
	}
	return r.RunMulti(ctx, records)
}

// RunFile parses path, expanding includes, and runs the resulting records
// via RunMulti.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	records, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	return r.RunMulti(ctx, records)
}

// RunMulti runs records in order, stopping at the first error or at a Halt
// record, matching spec.md §4.4/§7 exactly: run errors are fatal to the
// record that produced them, and RunMulti surfaces the first one.
func (r *Runner) RunMulti(ctx context.Context, records []slt.Record) error {
	for _, rec := range records {
		if _, ok := rec.(slt.HaltRecord); ok {
			return nil
		}
		if err := r.Run(ctx, rec); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Run dispatches a single record. Encountering an IncludeRecord is a
// program-invariant violation — the parser always expands includes before
// records reach the runner — and panics rather than returning an error.
func (r *Runner) Run(ctx context.Context, rec slt.Record) error {
	switch v := rec.(type) {
	case slt.IncludeRecord:
		panic(fmt.Sprintf("runner: Include record reached Run at %s; the parser should have expanded it", v.Location()))

	case slt.InjectedRecord:
		switch v.Kind {
		case slt.BeginInclude:
			r.Log.Debug("entering include", "path", v.Path)
		case slt.EndInclude:
			r.Log.Debug("leaving include", "path", v.Path)
		}
		return nil

	case slt.HaltRecord:
		return nil

	case slt.SubtestRecord, slt.CommentRecord, slt.NewlineRecord, slt.ConditionRecord:
		return nil

	case slt.ControlRecord:
		switch v.Kind {
		case slt.ControlSortMode:
			mode := v.SortMode
			r.State.SortMode = &mode
		case slt.ControlSubstitution:
			r.State.SubstEnvVars = v.Substitution
		}
		return nil

	case slt.HashThresholdRecord:
		r.State.HashThreshold = v.Threshold
		return nil

	case slt.SleepRecord:
		a, err := r.Pool.Get(ctx, r.State.ActiveConnection)
		if err != nil {
			return err
		}
		return a.Sleep(ctx, v.Duration)

	case slt.SystemRecord:
		return r.runSystem(ctx, v)

	case slt.StatementRecord:
		return r.runStatement(ctx, v)

	case slt.QueryRecord:
		_, err := r.runQuery(ctx, v)
		return err

	case slt.LetRecord:
		return r.runLet(ctx, v)

	default:
		return fmt.Errorf("runner: unhandled record type %T", rec)
	}
}

// substEnv snapshots the runner state needed for variable substitution.
// __TEST_DIR__ is created lazily on the first substitution pass, whether or
// not the text being substituted refers to it (see spec.md §4.2/§6.3).
func (r *Runner) substEnv() substitution.Env {
	if r.State.TestDir == "" {
		dir, err := os.MkdirTemp("", "slt-")
		if err == nil {
			r.State.TestDir = dir
		}
	}
	return substitution.Env{
		TestDir:  r.State.TestDir,
		Database: r.State.Database,
		Vars:     r.State.Vars,
	}
}

// substitute runs sql/command text through the active substitution mode,
// returning a *slt.TestError wrapping substitution.SubstError on failure.
func (r *Runner) substitute(loc slt.Location, text string) (string, error) {
	env := r.substEnv()
	if !r.State.SubstEnvVars {
		return substitution.Simple(text, env), nil
	}
	out, err := substitution.Full(text, env)
	if err != nil {
		return "", slt.NewTestError(slt.SubstError, loc, text, "", "", err)
	}
	return out, nil
}
