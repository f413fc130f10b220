package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/rules"
	"github.com/robert-at-pretension-io/vhdl-style/internal/ruleset"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

func newSelftestCmd(stdout, stderr io.Writer) *cobra.Command {
	var quiet bool
	var run string
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the fixture tests of every rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tests []engine.TestCase
			for _, tc := range ruleset.SelfTests() {
				if run == "" || strings.Contains(tc.Rule.Name+"/"+tc.Title, run) {
					tests = append(tests, tc)
				}
			}
			if len(tests) == 0 {
				fmt.Fprintf(stderr, "no test matches %q\n", run)
				return exitWith(engine.ExitUsage)
			}

			e := engine.New(vhdl.NewFrontend(), engine.Options{
				Quiet:    quiet,
				Stdout:   stdout,
				Stderr:   stderr,
				ReadFile: rules.ReadFixture,
			})
			rule := ""
			for _, tc := range tests {
				if tc.Rule.Name != rule {
					rule = tc.Rule.Name
					fmt.Fprintf(stdout, "%s:\n", rule)
				}
				if _, err := e.RunTest(cmd.Context(), rules.FixtureDir, tc); err != nil {
					fmt.Fprintf(stderr, "fatal: %v\n", err)
					return exitWith(engine.ExitCode(err))
				}
			}
			fmt.Fprintf(stdout, "%d test(s) run\n", len(tests))
			if n := e.Errors(); n > 0 {
				failColor.Fprintf(stdout, "%d test(s) failed\n", n)
				return exitWith(engine.ExitFailed)
			}
			okColor.Fprintln(stdout, "All tests passed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the diagnostics of the rules")
	cmd.Flags().StringVar(&run, "run", "", "only run tests whose rule/title contains this string")
	return cmd
}
