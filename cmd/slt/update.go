package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sqltestbench/slt/harness"
	"github.com/sqltestbench/slt/runner"
)

// runUpdate rewrites each file's expectations from its observed outcome,
// using the same per-file database isolation as runCheck. Unlike runCheck,
// a failure here is fatal to the whole invocation: a half-rewritten test
// suite is a worse state to leave the user in than an early exit.
func runUpdate(ctx context.Context, opts *options, files []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	for _, path := range files {
		dbName := harness.GenerateDBName(opts.DbName)
		if err := createDatabase(ctx, opts, dbName); err != nil {
			return fmt.Errorf("update: setting up database for %s: %w", path, err)
		}
		pool := newPool(opts, dbName)
		r := runner.New(pool, opts.Engine, log, opts.Label...)

		err := r.Update(ctx, path)

		if serr := pool.Shutdown(ctx); serr != nil {
			log.Warn("failed to shut down connections", "file", path, "error", serr)
		}
		if derr := dropDatabase(ctx, opts, dbName); derr != nil {
			log.Warn("failed to drop worker database", "database", dbName, "error", derr)
		}

		if err != nil {
			return fmt.Errorf("update: %s: %w", path, err)
		}
		fmt.Printf("updated %s\n", path)
	}
	return nil
}
