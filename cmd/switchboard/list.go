package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/switchboard/internal/cli"
	"github.com/aretw0/switchboard/internal/presentation/tui"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List toggles and whether they are enabled",
	Long:  `Loads the toggles, evaluates them now and prints a table. Output is rendered for terminals and plain markdown otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, logger := setup(cmd)
		asJSON, _ := cmd.Flags().GetBool("json")

		board, err := cli.CreateBoard(cmd.Context(), opts, logger, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading toggles: %v\n", err)
			os.Exit(1)
		}

		statuses := domain.Statuses(board.Toggles())

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(statuses); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding toggles: %v\n", err)
				os.Exit(1)
			}
			return
		}

		render := tui.PlainRenderer
		if term.IsTerminal(int(os.Stdout.Fd())) {
			render = tui.NewRenderer()
		}

		out, err := render(tui.Table(statuses))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering table: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Print statuses as JSON")
}
