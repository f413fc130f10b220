package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/vhdl-style/internal/config"
	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
)

func newInitCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.FileName + " configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check if file already exists
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(stdout, "Config file %s already exists. Overwrite? [y/N]: ", path)
				response, _ := bufio.NewReader(stdin).ReadString('\n')
				response = strings.TrimSpace(response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(stdout, "Aborted.")
					return nil
				}
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(path); err != nil {
				fmt.Fprintf(stderr, "Error creating config: %v\n", err)
				return exitWith(engine.ExitFatal)
			}

			fmt.Fprintf(stdout, "Created %s\n", path)
			fmt.Fprintln(stdout, "\nEdit this file to configure:")
			fmt.Fprintln(stdout, "  - VHDL standard and work library")
			fmt.Fprintln(stdout, "  - Rules turned off")
			fmt.Fprintln(stdout, "  - Style limits and allowed attributes")
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", config.FileName, "file to write")
	return cmd
}
