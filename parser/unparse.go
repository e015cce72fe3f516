package parser

import (
	"fmt"
	"strings"

	"github.com/sqltestbench/slt"
)

// Unparse renders records back to script text. InjectedRecord is a
// parser-internal bookkeeping marker that never appears in user source; one
// in the input is an invariant violation and panics rather than returning an
// error, matching the runner's treatment of IncludeRecord.
func Unparse(records []slt.Record) string {
	var b strings.Builder
	for _, rec := range records {
		writeRecord(&b, rec)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, rec slt.Record) {
	switch r := rec.(type) {
	case slt.CommentRecord:
		for _, line := range r.Lines {
			b.WriteByte('#')
			b.WriteString(line)
			b.WriteByte('\n')
		}

	case slt.NewlineRecord:
		b.WriteByte('\n')

	case slt.IncludeRecord:
		fmt.Fprintf(b, "include %s\n", r.Filename)

	case slt.HaltRecord:
		b.WriteString("halt\n")

	case slt.SubtestRecord:
		fmt.Fprintf(b, "subtest %s\n", r.Name)

	case slt.SleepRecord:
		fmt.Fprintf(b, "sleep %s\n", formatDuration(r.Duration))

	case slt.ConditionRecord:
		b.WriteString(r.Condition.String())
		b.WriteByte('\n')

	case slt.ControlRecord:
		switch r.Kind {
		case slt.ControlSortMode:
			fmt.Fprintf(b, "control sortmode %s\n", r.SortMode)
		case slt.ControlSubstitution:
			state := "off"
			if r.Substitution {
				state = "on"
			}
			fmt.Fprintf(b, "control substitution %s\n", state)
		}

	case slt.HashThresholdRecord:
		fmt.Fprintf(b, "hash-threshold %d\n", r.Threshold)

	case slt.StatementRecord:
		writeStatement(b, r)

	case slt.QueryRecord:
		writeQuery(b, r)

	case slt.SystemRecord:
		writeSystem(b, r)

	case slt.LetRecord:
		writeLet(b, r)

	case slt.InjectedRecord:
		panic(fmt.Sprintf("parser: cannot unparse injected include marker for %q at %s", r.Path, r.Location()))

	default:
		panic(fmt.Sprintf("parser: unparse: unhandled record type %T", rec))
	}
}

// writeConnection re-emits the `connection <name>` line a Statement/Query
// record carries. Conditions are NOT re-emitted here: the parser already
// produces a standalone ConditionRecord for every onlyif/skipif line, which
// writeRecord writes out immediately before the record it was attached to —
// writing them again from the Statement/Query's own Conditions field (kept
// there for the runner's benefit) would duplicate the line.
func writeConnection(b *strings.Builder, conn slt.ConnectionName) {
	if conn != slt.DefaultConnection {
		fmt.Fprintf(b, "connection %s\n", conn)
	}
}

func writeStatement(b *strings.Builder, r slt.StatementRecord) {
	writeConnection(b, r.Connection)

	b.WriteString("statement ")
	switch {
	case r.ExpectedCount != nil:
		fmt.Fprintf(b, "count %d\n", *r.ExpectedCount)
	case r.ExpectedError.Present:
		fmt.Fprintf(b, "error %s\n", r.ExpectedError.Source)
	default:
		b.WriteString("ok\n")
	}
	b.WriteString(r.SQL)
	b.WriteString("\n\n")
}

func writeQuery(b *strings.Builder, r slt.QueryRecord) {
	writeConnection(b, r.Connection)

	b.WriteString("query ")
	if r.ExpectedError.Present {
		fmt.Fprintf(b, "error %s\n", r.ExpectedError.Source)
	} else {
		b.WriteString(slt.FormatTypeString(r.Types))
		if r.SortMode != nil {
			fmt.Fprintf(b, " %s", *r.SortMode)
		}
		if r.Label != "" {
			fmt.Fprintf(b, " %s", r.Label)
		}
		b.WriteByte('\n')
	}
	b.WriteString(r.SQL)
	b.WriteByte('\n')
	if len(r.ExpectedResults) > 0 {
		b.WriteString("----\n")
		for _, line := range r.ExpectedResults {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
}

// writeLet re-emits a `let (...)` directive. The inner query has no type
// string, sort mode, or `----` results block — it is a bare SQL body, so it
// is written directly rather than through writeQuery.
func writeLet(b *strings.Builder, r slt.LetRecord) {
	writeConnection(b, r.Query.Connection)
	fmt.Fprintf(b, "let (%s)\n", strings.Join(r.VarNames, ", "))
	b.WriteString(r.Query.SQL)
	b.WriteString("\n\n")
}

func writeSystem(b *strings.Builder, r slt.SystemRecord) {
	b.WriteString("system ")
	if r.ExpectedError.Present {
		fmt.Fprintf(b, "error %s\n", r.ExpectedError.Source)
	} else {
		b.WriteString("ok\n")
	}
	b.WriteString(r.Command)
	b.WriteString("\n\n")
}
