// Package harness runs many test scripts concurrently, one runner.Runner per
// file, each against its own freshly named database so files never
// interfere with each other. The bounded-fanout shape is grounded on the
// teacher's database.ConcurrentMapFuncWithError (golang.org/x/sync/errgroup
// with SetLimit); unique naming is grounded on the per-test UUID database
// names the pack's own SQL Server/Postgres test fixture creates and drops
// around each run.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofrs/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sqltestbench/slt/connection"
	"github.com/sqltestbench/slt/runner"
)

// GenerateDBName returns a unique database name for a single worker, using a
// v4 UUID suffix so concurrent runs never collide (there is no stable
// per-file test name to hash the way the teacher's fixed test corpus has).
func GenerateDBName(prefix string) string {
	id := strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, id)
}

// PoolFactory builds a fresh connection.Pool for one worker's run, wired
// against a database named dbName. Callers typically have this create the
// database first (via an admin connection) then return a Pool whose default
// Factory opens a new connection scoped to it.
type PoolFactory func(ctx context.Context, dbName string) (*connection.Pool, error)

// Cleanup best-effort drops the database named dbName after its worker
// finishes, regardless of whether the run succeeded.
type Cleanup func(ctx context.Context, dbName string) error

// Options configures a harness Run.
type Options struct {
	// Jobs bounds concurrent workers. 0 disables concurrency (sequential);
	// negative means unbounded, mirroring the teacher's
	// ConcurrentMapFuncWithError convention.
	Jobs int
	// EngineName is passed to each runner.New as the implicit active label.
	EngineName string
	// Labels are additional always-active condition labels for every worker.
	Labels []string
	// DBPrefix names the harness.GenerateDBName prefix, e.g. "slt".
	DBPrefix string
	NewPool  PoolFactory
	Cleanup  Cleanup
	Log      *slog.Logger
}

// FileResult is one script file's outcome.
type FileResult struct {
	Path string
	Err  error
}

// Report is the aggregate outcome of a Run across every file.
type Report struct {
	Results []FileResult
}

// Passed reports whether every file in the report ran without error.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// Run executes each path in files concurrently, bounded by opts.Jobs, and
// returns a Report with one FileResult per file in unspecified order — a
// consumer that needs deterministic ordering should sort Report.Results by
// Path. Every failure, including a PoolFactory call failing, is recorded as
// that file's FileResult rather than returned: no worker returns an error,
// so the returned error is nil.
func Run(ctx context.Context, files []string, opts Options) (Report, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		eg.SetLimit(opts.Jobs)
	} else if opts.Jobs == 0 {
		eg.SetLimit(1)
	}

	results := make([]FileResult, len(files))
	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			results[i] = runOne(egCtx, opts, log, path)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Report{Results: results}, err
	}
	return Report{Results: results}, nil
}

func runOne(ctx context.Context, opts Options, log *slog.Logger, path string) FileResult {
	dbName := GenerateDBName(opts.DBPrefix)
	workerLog := log.With("file", path, "database", dbName)

	pool, err := opts.NewPool(ctx, dbName)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("harness: setting up database %q for %s: %w", dbName, path, err)}
	}

	if opts.Cleanup != nil {
		defer func() {
			if cerr := opts.Cleanup(context.WithoutCancel(ctx), dbName); cerr != nil {
				workerLog.Warn("failed to drop worker database", "error", cerr)
			}
		}()
	}
	defer func() {
		if serr := pool.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			workerLog.Warn("failed to shut down connections", "error", serr)
		}
	}()

	r := runner.New(pool, opts.EngineName, workerLog, opts.Labels...)
	err = r.RunFile(ctx, path)
	return FileResult{Path: path, Err: err}
}
