// Package sqlbase implements the shared `database/sql`-backed half of
// slt.Adapter: running SQL text, rendering rows to the string cells the
// compare pipeline expects, sleeping, and shelling out for `system`
// directives. Concrete engine packages (adapter/sqlite, adapter/postgres,
// adapter/mysql, adapter/mssql) each supply only a driver name and DSN
// builder and embed Core for everything else.
package sqlbase

import (
	"context"
	"database/sql"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sqltestbench/slt"
)

// Core is the database/sql-backed implementation shared by every concrete
// adapter. Engine is returned verbatim by EngineName() and is also the
// implicit condition label spec.md §4.4 describes.
type Core struct {
	DB     *sql.DB
	Engine string
}

// EngineName implements slt.Adapter.
func (c *Core) EngineName() string { return c.Engine }

// Run classifies sql as query-shaped or statement-shaped by its leading
// keyword — a deliberately shallow heuristic, not a SQL parser, since
// database/sql requires calling QueryContext vs ExecContext up front and
// has no single unified "just run this" entry point the way the
// reference implementation's simple_query protocol call does.
func (c *Core) Run(ctx context.Context, sqlText string) (slt.Outcome, error) {
	if looksLikeQuery(sqlText) {
		return c.runQuery(ctx, sqlText)
	}
	return c.runStatement(ctx, sqlText)
}

var queryKeywords = []string{"select", "with", "show", "explain", "pragma", "values", "desc", "describe", "table"}

func looksLikeQuery(sqlText string) bool {
	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		return false
	}
	first := strings.ToLower(strings.Fields(trimmed)[0])
	for _, kw := range queryKeywords {
		if first == kw {
			return true
		}
	}
	return false
}

func (c *Core) runStatement(ctx context.Context, sqlText string) (slt.Outcome, error) {
	res, err := c.DB.ExecContext(ctx, sqlText)
	if err != nil {
		return slt.Outcome{}, err
	}
	n, _ := res.RowsAffected()
	if n < 0 {
		n = 0
	}
	return slt.Outcome{StatementOK: true, RowsAffected: uint64(n)}, nil
}

func (c *Core) runQuery(ctx context.Context, sqlText string) (slt.Outcome, error) {
	rows, err := c.DB.QueryContext(ctx, sqlText)
	if err != nil {
		return slt.Outcome{}, err
	}
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return slt.Outcome{}, err
	}
	types := make([]slt.ColumnType, len(cols))
	for i, ct := range cols {
		types[i] = classifyColumn(ct.DatabaseTypeName())
	}

	var out [][]string
	scanTargets := make([]any, len(cols))
	cells := make([]sql.NullString, len(cols))
	for i := range cells {
		scanTargets[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return slt.Outcome{}, err
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = renderCell(c)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return slt.Outcome{}, err
	}

	if out == nil {
		out = [][]string{}
	}
	return slt.Outcome{Types: types, Rows: out}, nil
}

// renderCell matches the historical sqllogictest convention: NULL values
// render as the literal text "NULL"; empty strings render as "(empty)" so
// they remain visually distinct from a trailing blank line in the
// expected-results block.
func renderCell(c sql.NullString) string {
	if !c.Valid {
		return "NULL"
	}
	if c.String == "" {
		return "(empty)"
	}
	return c.String
}

func classifyColumn(dbType string) slt.ColumnType {
	upper := strings.ToUpper(dbType)
	switch {
	case strings.Contains(upper, "INT"):
		t, _ := slt.DefaultAlphabet.FromChar('I')
		return t
	case strings.Contains(upper, "FLOAT"), strings.Contains(upper, "REAL"), strings.Contains(upper, "DOUBLE"), strings.Contains(upper, "DECIMAL"), strings.Contains(upper, "NUMERIC"):
		t, _ := slt.DefaultAlphabet.FromChar('R')
		return t
	default:
		t, _ := slt.DefaultAlphabet.FromChar('T')
		return t
	}
}

// Sleep blocks for d, respecting ctx cancellation — spec.md's only
// temporal primitive.
func (c *Core) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunCommand shells out argv[0] with argv[1:], capturing stdout/stderr and
// exit status for a `system` directive.
func (c *Core) RunCommand(ctx context.Context, argv []string) (slt.CommandOutput, error) {
	if len(argv) == 0 {
		return slt.CommandOutput{}, fmt.Errorf("sqlbase: empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
		err = nil
	}
	return slt.CommandOutput{ExitCode: exitCode, Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// Shutdown closes the underlying *sql.DB.
func (c *Core) Shutdown(ctx context.Context) error {
	return c.DB.Close()
}

// ErrorSQLState is the fallback used by engines whose driver doesn't
// expose a SQLSTATE-like code; concrete adapters override this where their
// driver's error type carries one (e.g. lib/pq's *pq.Error.Code).
func (c *Core) ErrorSQLState(err error) (string, bool) {
	return "", false
}
