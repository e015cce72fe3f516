package runner

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/sqltestbench/slt"
	"github.com/sqltestbench/slt/compare"
	"github.com/sqltestbench/slt/parser"
)

// Update replays path's script against the runner's adapter, observing each
// statement/query/system record's actual outcome, and rewrites the file
// (and every included file, each to its own sibling) with those outcomes
// substituted for the hand-authored expectations — per spec.md §4.4's
// closing paragraph. Comments, blank lines, and include ordering survive
// unchanged because the rewrite walks the already-parsed record stream
// rather than the raw text.
func (r *Runner) Update(ctx context.Context, path string) error {
	records, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	tree, err := r.observe(ctx, records)
	if err != nil {
		return err
	}

	return writeFileTree(tree)
}

// fileRewrite collects the rewritten records destined for one physical
// file, plus the rewritten records of every file it transitively includes.
type fileRewrite struct {
	path     string
	records  []slt.Record
	children []*fileRewrite
}

// observe walks records, executing each against the live adapter and
// building one fileRewrite per file boundary (tracked via the
// BeginInclude/EndInclude brackets the parser injects).
func (r *Runner) observe(ctx context.Context, records []slt.Record) (*fileRewrite, error) {
	var root *fileRewrite
	stack := []*fileRewrite{}

	push := func(path string) {
		f := &fileRewrite{path: path}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.children = append(top.children, f)
		} else {
			root = f
		}
		stack = append(stack, f)
	}

	for _, rec := range records {
		if inj, ok := rec.(slt.InjectedRecord); ok {
			switch inj.Kind {
			case slt.BeginInclude:
				push(inj.Path)
			case slt.EndInclude:
				stack = stack[:len(stack)-1]
			}
			continue
		}
		if len(stack) == 0 {
			push(rec.Location().File)
		}
		top := stack[len(stack)-1]

		observed, err := r.observeRecord(ctx, rec)
		if err != nil {
			return nil, err
		}
		top.records = append(top.records, observed)
	}
	return root, nil
}

// observeRecord executes one record for its actual side effect and
// returns the record to emit in the rewritten file: unchanged for
// everything but Statement/Query/System, which are replaced by a record
// reflecting the observed outcome.
func (r *Runner) observeRecord(ctx context.Context, rec slt.Record) (slt.Record, error) {
	switch v := rec.(type) {
	case slt.StatementRecord:
		return r.observeStatement(ctx, v)
	case slt.QueryRecord:
		return r.observeQuery(ctx, v)
	case slt.SystemRecord:
		return r.observeSystem(ctx, v)
	case slt.LetRecord:
		if err := r.runLet(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		if err := r.Run(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
}

func (r *Runner) observeStatement(ctx context.Context, rec slt.StatementRecord) (slt.Record, error) {
	if r.State.shouldSkip(rec.Conditions) {
		return rec, nil
	}
	sql, err := r.substitute(rec.Location(), rec.SQL)
	if err != nil {
		return nil, err
	}
	conn := rec.Connection
	if conn == slt.DefaultConnection {
		conn = r.State.ActiveConnection
	}
	adapter, err := r.Pool.Get(ctx, conn)
	if err != nil {
		return nil, err
	}

	outcome, runErr := adapter.Run(ctx, sql)
	if runErr != nil {
		matcher, _ := slt.NewErrorMatcher(regexp.QuoteMeta(runErr.Error()))
		return slt.NewStatement(rec.Location(), rec.Conditions, rec.Connection, matcher, nil, rec.SQL), nil
	}

	// A plain `statement ok` asserts success only; preserve that rather than
	// upgrading it to an exact-rowcount assertion the author never wrote.
	// Only a statement that already carried `count N` gets its count
	// refreshed from the observed outcome.
	var expectedCount *uint64
	if rec.ExpectedCount != nil {
		count := outcome.RowsAffected
		if outcome.Rows != nil {
			count = uint64(len(outcome.Rows))
		}
		expectedCount = &count
	}
	return slt.NewStatement(rec.Location(), rec.Conditions, rec.Connection, slt.ErrorMatcher{}, expectedCount, rec.SQL), nil
}

func (r *Runner) observeQuery(ctx context.Context, rec slt.QueryRecord) (slt.Record, error) {
	if r.State.shouldSkip(rec.Conditions) {
		return rec, nil
	}
	sql, err := r.substitute(rec.Location(), rec.SQL)
	if err != nil {
		return nil, err
	}
	conn := rec.Connection
	if conn == slt.DefaultConnection {
		conn = r.State.ActiveConnection
	}
	adapter, err := r.Pool.Get(ctx, conn)
	if err != nil {
		return nil, err
	}

	outcome, runErr := adapter.Run(ctx, sql)
	if runErr != nil {
		matcher, _ := slt.NewErrorMatcher(regexp.QuoteMeta(runErr.Error()))
		return slt.NewQuery(rec.Location(), rec.Conditions, rec.Connection, rec.Types, rec.SortMode, rec.Label, matcher, rec.SQL, nil), nil
	}
	if outcome.Rows == nil {
		return rec, nil
	}

	mode := r.State.effectiveSortMode(rec.SortMode)
	produced := compare.Flatten(outcome.Rows, mode, r.State.normalizer())
	compare.Sort(produced, mode)
	produced = compare.HashThreshold(produced, r.State.HashThreshold)

	return slt.NewQuery(rec.Location(), rec.Conditions, rec.Connection, outcome.Types, rec.SortMode, rec.Label, slt.ErrorMatcher{}, rec.SQL, produced), nil
}

func (r *Runner) observeSystem(ctx context.Context, rec slt.SystemRecord) (slt.Record, error) {
	command, err := r.substitute(rec.Location(), rec.Command)
	if err != nil {
		return nil, err
	}
	adapter, err := r.Pool.Get(ctx, r.State.ActiveConnection)
	if err != nil {
		return nil, err
	}
	out, runErr := adapter.RunCommand(ctx, []string{"sh", "-c", command})
	if runErr != nil || out.ExitCode != 0 {
		msg := out.Stderr
		if runErr != nil {
			msg = runErr.Error()
		}
		matcher, _ := slt.NewErrorMatcher(regexp.QuoteMeta(msg))
		return slt.NewSystem(rec.Location(), matcher, rec.Command), nil
	}
	return slt.NewSystem(rec.Location(), slt.ErrorMatcher{}, rec.Command), nil
}

// writeFileTree unparses and atomically writes tree and every descendant,
// writing each to a "<path>.temp" sibling first and renaming over the
// original so a crash mid-update never leaves a half-written script.
func writeFileTree(tree *fileRewrite) error {
	if tree == nil {
		return nil
	}
	for _, child := range tree.children {
		if err := writeFileTree(child); err != nil {
			return err
		}
	}
	text := parser.Unparse(tree.records)
	temp := tree.path + ".temp"
	if err := os.WriteFile(temp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("update: writing %s: %w", temp, err)
	}
	if err := os.Rename(temp, tree.path); err != nil {
		return fmt.Errorf("update: renaming %s to %s: %w", temp, tree.path, err)
	}
	return nil
}
