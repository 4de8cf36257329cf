package main

import (
	"fmt"
	"os"

	"github.com/aretw0/switchboard/internal/cli"
	"github.com/aretw0/switchboard/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Check whether a toggle is enabled",
	Long:  `Evaluates a single toggle now. Exits with status 1 when it is disabled and 2 when it does not exist, so it can gate shell scripts.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, logger := setup(cmd)
		quiet, _ := cmd.Flags().GetBool("quiet")

		board, err := cli.CreateBoard(cmd.Context(), opts, logger, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading toggles: %v\n", err)
			os.Exit(2)
		}

		toggle, err := board.Lookup(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		enabled := toggle.IsEnabled()
		if !quiet {
			profile := termenv.Ascii
			if term.IsTerminal(int(os.Stdout.Fd())) {
				profile = termenv.ColorProfile()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.Badge(enabled, profile), toggle.Name())
		}

		if !enabled {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "Only set the exit status")
}
