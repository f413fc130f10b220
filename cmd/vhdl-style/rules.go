package main

import (
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/vhdl-style/internal/config"
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/ruleset"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

func newRulesCmd(stdout io.Writer) *cobra.Command {
	var set string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules and what they check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []*engine.Rule
			if set == "" {
				list = ruleset.All()
			} else {
				var err error
				list, err = ruleset.Build(cmd.Context(), set, config.DefaultConfig())
				if err != nil {
					return err
				}
			}
			renderRules(stdout, list)
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "ruleset", "", "list the rules of this set instead of every rule")
	return cmd
}

func renderRules(w io.Writer, list []*engine.Rule) {
	sorted := make([]*engine.Rule, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Phase", "Checks"})
	for _, r := range sorted {
		t.AppendRow(table.Row{r.Name, r.Kind.String(), r.Doc})
	}
	t.AppendFooter(table.Row{"", "", len(sorted)})
	t.Render()
}
