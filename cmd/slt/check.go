package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/sqltestbench/slt/connection"
	"github.com/sqltestbench/slt/harness"
)

// runCheck runs every file through the harness and prints a colorized
// pass/fail summary, optionally writing a JUnit report. It returns the
// process exit code: 0 if every file passed, 1 otherwise.
func runCheck(ctx context.Context, opts *options, files []string) int {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	report, err := harness.Run(ctx, files, harness.Options{
		Jobs:       opts.Jobs,
		EngineName: opts.Engine,
		Labels:     opts.Label,
		DBPrefix:   opts.DbName,
		NewPool: func(ctx context.Context, dbName string) (*connection.Pool, error) {
			if err := createDatabase(ctx, opts, dbName); err != nil {
				return nil, err
			}
			return newPool(opts, dbName), nil
		},
		Cleanup: func(ctx context.Context, dbName string) error {
			return dropDatabase(ctx, opts, dbName)
		},
		Log: log,
	})
	if err != nil {
		fmt.Println(color.RedString("harness error: %s", err))
		return 1
	}

	exitCode := printSummary(report.Results)

	if opts.JUnit != "" {
		if err := writeJUnitReport(opts.JUnit, report.Results); err != nil {
			fmt.Println(color.RedString("failed to write JUnit report: %s", err))
			return 1
		}
	}

	return exitCode
}

func printSummary(results []harness.FileResult) int {
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%s %s\n", color.RedString("FAIL"), r.Path)
			fmt.Printf("    %s\n", r.Err)
		} else {
			fmt.Printf("%s %s\n", color.GreenString("ok"), r.Path)
		}
	}
	fmt.Println()
	if failed == 0 {
		fmt.Println(color.GreenString("%d passed", len(results)))
		return 0
	}
	fmt.Println(color.RedString("%d passed, %d failed", len(results)-failed, failed))
	return 1
}
