package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/robert-at-pretension-io/vhdl-style/internal/config"
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/ruleset"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

const usage = `usage: vhdl-style [OPTIONS] [--import|--synth|--top|--tb] FILE...
       vhdl-style selftest [-q] [--run SUBSTR]
       vhdl-style rules
       vhdl-style init

Options:
  -h, --help          show this help and exit
  -v, --verbose       trace the phases on stderr
  -q, --quiet         do not print diagnostics, only the verdict
  --config=FILE       read the configuration from FILE
  --ruleset=NAME      rule set to run (ohwr, full)
  --std=STD           VHDL standard: 87, 93, 93c, 00, 02, 08
  --work=NAME         name of the work library
  --ieee=LIB          ieee library flavour: standard, synopsys
  -frelaxed           relax some analysis rules

FILE may be a directory or a glob pattern (** matches any depth).

Configuration is read from --config, ./vhdl_style.yaml, ./.vhdl_style.yaml
or ~/.config/vhdl_style/config.yaml, then from VHDL_STYLE_* variables.
`

// invocation is a parsed command line of the check command.
type invocation struct {
	help       bool
	verbose    bool
	quiet      bool
	configPath string
	ruleset    string
	// feOptions are handed to the front-end, after the configured ones.
	feOptions []string
	// files holds file names and property switches in order.
	files []string
}

// parseArgs splits the command line. Options are only recognized before the
// first file; property switches may appear anywhere and stay with the
// files.
func parseArgs(args []string) *invocation {
	inv := &invocation{ruleset: ruleset.Default}
	for _, arg := range args {
		if len(inv.files) > 0 || !strings.HasPrefix(arg, "-") {
			inv.files = append(inv.files, arg)
			continue
		}
		if _, ok := engine.SwitchProps(arg); ok {
			inv.files = append(inv.files, arg)
			continue
		}
		switch {
		case arg == "-h" || arg == "--help":
			inv.help = true
		case arg == "-v" || arg == "--verbose":
			inv.verbose = true
		case arg == "-q" || arg == "--quiet":
			inv.quiet = true
		case strings.HasPrefix(arg, "--config="):
			inv.configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--ruleset="):
			inv.ruleset = strings.TrimPrefix(arg, "--ruleset=")
		default:
			inv.feOptions = append(inv.feOptions, arg)
		}
	}
	return inv
}

// hasFile reports whether args name at least one file.
func hasFile(args []string) bool {
	for _, a := range args {
		if !engine.IsSwitch(a) {
			return true
		}
	}
	return false
}

func newLogger(w io.Writer, verbose bool) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetOutput(io.Discard)
	}
	return l
}

// runCheck runs a rule set over the files of args and returns the exit
// status.
func runCheck(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv := parseArgs(args)
	if inv.help {
		fmt.Fprint(stdout, usage)
		return engine.ExitOK
	}

	cfg, err := config.Load(inv.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return engine.ExitUsage
	}

	fe := vhdl.NewFrontend()
	for _, opt := range cfg.FrontendOptions() {
		if err := fe.SetOption(opt); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return engine.ExitUsage
		}
	}
	for _, opt := range inv.feOptions {
		if err := fe.SetOption(opt); err != nil {
			fmt.Fprintf(stderr, "unknown option %s\n", opt)
			fmt.Fprintln(stderr, "try: vhdl-style --help")
			return engine.ExitUsage
		}
	}

	files, err := config.ExpandArgs(inv.files)
	if err != nil {
		fmt.Fprintf(stderr, "expanding arguments: %v\n", err)
		return engine.ExitUsage
	}
	if !hasFile(files) {
		fmt.Fprintln(stderr, "no input file")
		return engine.ExitUsage
	}

	log := newLogger(stderr, inv.verbose)
	rules, err := ruleset.Build(ctx, inv.ruleset, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return engine.ExitCode(err)
	}
	match, err := cfg.ImportMatcher()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return engine.ExitUsage
	}

	e := engine.New(fe, engine.Options{
		Quiet:       inv.quiet || cfg.Quiet,
		Stdout:      stdout,
		Stderr:      stderr,
		Logger:      log,
		MaxParallel: cfg.MaxParallelFiles,
		Import:      match,
	})
	for _, r := range rules {
		if err := e.Add(r); err != nil {
			fmt.Fprintln(stderr, err)
			return engine.ExitCode(err)
		}
	}
	log.WithFields(logrus.Fields{"ruleset": inv.ruleset, "rules": len(rules)}).Debug("rules registered")

	if err := e.Execute(ctx, files); err != nil {
		code := engine.ExitCode(err)
		if code == engine.ExitFatal {
			fmt.Fprintf(stderr, "fatal: %v\n", err)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return code
	}
	return e.Report(stdout)
}
