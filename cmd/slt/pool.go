package main

import (
	"context"
	"fmt"

	"github.com/sqltestbench/slt"
	"github.com/sqltestbench/slt/adapter/mysql"
	"github.com/sqltestbench/slt/adapter/postgres"
	"github.com/sqltestbench/slt/adapter/sqlite"
	"github.com/sqltestbench/slt/connection"
)

// newAdapter opens a connection to opts.Engine scoped to dbName. connName is
// not used: every sqlite adapter opens its own ":memory:" database, so
// distinct named connections within one script (spec.md's `connection`
// directive) get distinct in-memory databases.
func newAdapter(opts *options, dbName string, connName slt.ConnectionName) (slt.Adapter, error) {
	switch opts.Engine {
	case "sqlite":
		// Each named connection gets its own private in-memory database;
		// modernc.org/sqlite opens a fresh one per ":memory:" DSN.
		return sqlite.New(sqlite.Config{Path: ":memory:"})

	case "postgres":
		port := opts.Port
		if port == 0 {
			port = 5432
		}
		return postgres.New(postgres.Config{
			Host: opts.Host, Port: port, User: opts.User, Password: opts.Password,
			DbName: dbName, SslMode: "disable",
		})

	case "mysql":
		port := opts.Port
		if port == 0 {
			port = 3306
		}
		return mysql.New(mysql.Config{
			Host: opts.Host, Port: port, User: opts.User, Password: opts.Password,
			DbName: dbName,
		})

	default:
		return nil, fmt.Errorf("unsupported engine %q", opts.Engine)
	}
}

// newPool builds a connection.Pool whose lazily-created adapters all target
// dbName, one per distinct `connection` directive name encountered.
func newPool(opts *options, dbName string) *connection.Pool {
	return connection.NewPool(func(name slt.ConnectionName) (slt.Adapter, error) {
		return newAdapter(opts, dbName, name)
	})
}

// createDatabase connects to the engine's default administrative database
// to create a per-worker database before a harness run. sqlite has
// no such notion — each worker already gets its own private in-memory
// database, so creation/drop are no-ops.
func createDatabase(ctx context.Context, opts *options, dbName string) error {
	switch opts.Engine {
	case "sqlite":
		return nil
	case "postgres":
		admin, err := newAdapter(opts, "postgres", slt.DefaultConnection)
		if err != nil {
			return err
		}
		defer admin.Shutdown(ctx)
		_, err = admin.Run(ctx, fmt.Sprintf(`CREATE DATABASE "%s"`, dbName))
		return err
	case "mysql":
		admin, err := newAdapter(opts, "", slt.DefaultConnection)
		if err != nil {
			return err
		}
		defer admin.Shutdown(ctx)
		_, err = admin.Run(ctx, fmt.Sprintf("CREATE DATABASE `%s`", dbName))
		return err
	default:
		return fmt.Errorf("unsupported engine %q", opts.Engine)
	}
}

func dropDatabase(ctx context.Context, opts *options, dbName string) error {
	switch opts.Engine {
	case "sqlite":
		return nil
	case "postgres":
		admin, err := newAdapter(opts, "postgres", slt.DefaultConnection)
		if err != nil {
			return err
		}
		defer admin.Shutdown(ctx)
		_, err = admin.Run(ctx, fmt.Sprintf(`DROP DATABASE IF EXISTS "%s"`, dbName))
		return err
	case "mysql":
		admin, err := newAdapter(opts, "", slt.DefaultConnection)
		if err != nil {
			return err
		}
		defer admin.Shutdown(ctx)
		_, err = admin.Run(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", dbName))
		return err
	default:
		return fmt.Errorf("unsupported engine %q", opts.Engine)
	}
}
