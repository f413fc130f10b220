package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/robert-at-pretension-io/vhdl-style/internal/config"
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/facts"
	"github.com/robert-at-pretension-io/vhdl-style/internal/validator"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vhdl-facts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "", "write facts JSON to file (default: stdout)")
	fs.StringVar(output, "o", "", "write facts JSON to file (shorthand)")
	configPath := fs.String("config", "", "configuration file")
	deltaFrom := fs.String("delta-from", "", "previous facts JSON to compute delta from")
	deltaOut := fs.String("delta-out", "", "write delta JSON to file (requires --delta-from)")
	checkedOnly := fs.Bool("checked-only", false, "leave out the rows of imported files")
	impact := fs.String("impact", "", "print the files affected by a change of this file instead of the facts")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return engine.ExitOK
		}
		return engine.ExitUsage
	}

	paths := fs.Args()
	if len(paths) < 1 {
		fmt.Fprintln(stderr, "Usage: vhdl-facts [--config file] [--output file] [--delta-from prev.json --delta-out delta.json] [--impact file] [--checked-only] <path>...")
		return engine.ExitUsage
	}
	if (*deltaFrom == "") != (*deltaOut == "") {
		fmt.Fprintln(stderr, "Error: --delta-from and --delta-out must be used together")
		return engine.ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return engine.ExitUsage
	}
	tables, err := collect(context.Background(), cfg, paths, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return engine.ExitCode(err)
	}
	if err := validator.ValidateFacts(tables); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return engine.ExitFatal
	}

	var onlyFiles map[string]bool
	if *checkedOnly {
		onlyFiles = make(map[string]bool)
		for _, f := range tables.Files {
			if f.Checked {
				onlyFiles[f.Path] = true
			}
		}
		tables = facts.FilterTablesByFiles(tables, onlyFiles)
	}

	if *impact != "" {
		report := facts.ComputeImpact(*impact, facts.BuildDependentsGraph(tables))
		fmt.Fprint(stdout, report.String())
		return engine.ExitOK
	}

	if *output != "" {
		if err := writeJSON(*output, tables); err != nil {
			fmt.Fprintf(stderr, "Error writing facts: %v\n", err)
			return engine.ExitFatal
		}
	} else if err := encode(stdout, tables); err != nil {
		fmt.Fprintf(stderr, "Error encoding facts: %v\n", err)
		return engine.ExitFatal
	}

	if *deltaFrom != "" {
		prev, err := readTables(*deltaFrom)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading delta-from: %v\n", err)
			return engine.ExitFatal
		}
		delta := facts.ComputeDelta(prev, tables)
		if onlyFiles != nil {
			delta = facts.FilterDeltaByFiles(delta, onlyFiles)
		}
		if err := writeJSON(*deltaOut, delta); err != nil {
			fmt.Fprintf(stderr, "Error writing delta: %v\n", err)
			return engine.ExitFatal
		}
	}
	return engine.ExitOK
}

// collect runs the front-end phases over paths and builds the facts of
// every unit, imported ones included.
func collect(ctx context.Context, cfg *config.Config, paths []string, stderr io.Writer) (facts.Tables, error) {
	fe := vhdl.NewFrontend()
	for _, opt := range cfg.FrontendOptions() {
		if err := fe.SetOption(opt); err != nil {
			return facts.Tables{}, &engine.ConfigError{Msg: "config", Err: err}
		}
	}
	files, err := config.ExpandArgs(paths)
	if err != nil {
		return facts.Tables{}, &engine.ConfigError{Msg: "expanding arguments", Err: err}
	}
	match, err := cfg.ImportMatcher()
	if err != nil {
		return facts.Tables{}, &engine.ConfigError{Msg: "config", Err: err}
	}

	e := engine.New(fe, engine.Options{
		Stdout:      io.Discard,
		Stderr:      stderr,
		MaxParallel: cfg.MaxParallelFiles,
		Import:      match,
	})
	// A semantic rule is needed for the units to be resolved.
	resolve := engine.NewSemanticUnit("Facts", "resolve every unit",
		func(engine.Reporter, *engine.Input, *vhdl.Node) {})
	if err := e.Add(resolve); err != nil {
		return facts.Tables{}, err
	}
	if err := e.Execute(ctx, files); err != nil {
		return facts.Tables{}, err
	}

	var units []*vhdl.Node
	checked := make(map[string]bool)
	for _, in := range e.Inputs() {
		units = append(units, in.Units...)
		checked[in.Name] = in.Checked()
	}
	return facts.BuildTables(units, func(file string) bool { return checked[file] }), nil
}

func readTables(path string) (facts.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return facts.Tables{}, err
	}
	defer func() { _ = f.Close() }()

	var tables facts.Tables
	if err := json.NewDecoder(f).Decode(&tables); err != nil {
		return facts.Tables{}, err
	}
	return tables, nil
}

func encode(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeJSON(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return encode(f, data)
}
