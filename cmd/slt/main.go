// Command slt runs sqllogictest-style scripts against a configured SQL
// engine and reports pass/fail, grounded on the teacher's
// cmd/mysqldef-style flags.NewParser CLI wiring, generalized from "apply a
// schema" to "run a set of test scripts".
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/sqltestbench/slt/util"
)

var version string

type options struct {
	Config   string   `short:"c" long:"config" description:"YAML file supplying connection defaults, overridden by any flag given explicitly" value-name:"path"`
	Engine   string   `short:"e" long:"engine" description:"Engine to run against (sqlite, postgres, mysql)" value-name:"engine" default:"sqlite"`
	Host     string   `short:"H" long:"host" description:"Host to connect to" value-name:"host_name" default:"127.0.0.1"`
	Port     int      `short:"P" long:"port" description:"Port used for the connection" value-name:"port_num"`
	User     string   `short:"u" long:"user" description:"Database user" value-name:"user_name"`
	Password string   `short:"p" long:"password" description:"Database password, overridden by $SLT_PASSWORD" value-name:"password"`
	Prompt   bool     `long:"password-prompt" description:"Prompt for the database password on the terminal instead of reading it from a flag or file"`
	DbName   string   `long:"db" description:"Base database name" value-name:"db_name" default:"slt"`
	Jobs     int      `short:"j" long:"jobs" description:"Number of scripts to run concurrently (0 = sequential)" value-name:"n" default:"1"`
	Label    []string `long:"label" description:"Extra condition label to keep active throughout the run"`
	Update   bool     `long:"update" description:"Rewrite each script's expected results from the observed outcome instead of checking them"`
	JUnit    string   `long:"junit" description:"Write a JUnit XML report to this path" value-name:"path"`
	Verbose  bool     `long:"verbose" description:"Enable debug logging"`
	Help     bool     `long:"help" description:"Show this help"`
	Version  bool     `long:"version" description:"Show this version"`
}

func parseOptions(args []string) (*options, []string) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options] script.slt [script2.slt ...]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	if len(rest) == 0 {
		fmt.Print("No test scripts given!\n\n")
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		log.Fatal(err)
	}
	applyConfig(&opts, cfg)

	if password, ok := os.LookupEnv("SLT_PASSWORD"); ok {
		opts.Password = password
	}

	if opts.Prompt {
		fmt.Print("Enter Password: ")
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatal(err)
		}
		opts.Password = string(pass)
	}

	return &opts, rest
}

func expandFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func main() {
	util.InitSlog()
	opts, patterns := parseOptions(os.Args[1:])

	files, err := expandFiles(patterns)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		fmt.Println("no test files matched")
		os.Exit(1)
	}

	ctx := context.Background()

	if opts.Update {
		if err := runUpdate(ctx, opts, files); err != nil {
			log.Fatal(err)
		}
		return
	}

	os.Exit(runCheck(ctx, opts, files))
}
