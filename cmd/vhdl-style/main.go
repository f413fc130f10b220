// =============================================================================
// vhdl-style - Main Entry Point
// =============================================================================
//
// Checks VHDL files against a coding style, one rule set per run.
//
// THE PIPELINE:
//   1. intake     files are read, whole-file rules see raw lines
//   2. lexical    token rules see the token stream with comments
//   3. syntax     syntax rules see the parsed design file
//   4. semantic   units go to the library and are resolved
//   5. synthesis  synthesis rules see units listed after --synth/--top
//
// Every diagnostic is a line "file:line:col: [Rule] message" on stderr. The
// verdict goes to stdout and selects the exit status:
//   0 no error, 1 lint errors, 2 usage or configuration, 3 fatal.
// =============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

// exitError carries the status a command wants the process to exit with.
// Its message has already been printed.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitWith(code int) error {
	if code == engine.ExitOK {
		return nil
	}
	return &exitError{code: code}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "vhdl-style [options] [--import|--synth|--top|--tb] FILE...",
		Short: "Check VHDL files against a coding style",
		Long: `vhdl-style runs a rule set over VHDL files and reports every violation.

Property switches apply to the files listed after them:
  --import   analyzed so later files can use it, never checked
  --synth    checked, synthesis rules apply (default)
  --top      like --synth, for the top-level unit
  --tb       checked as a testbench`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitWith(runCheck(cmd.Context(), args, stdout, stderr))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newSelftestCmd(stdout, stderr))
	root.AddCommand(newRulesCmd(stdout))
	root.AddCommand(newInitCmd(os.Stdin, stdout, stderr))
	return root
}

// execute runs the command line args and returns the exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return engine.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "vhdl-style: %v\n", err)
	return engine.ExitUsage
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
