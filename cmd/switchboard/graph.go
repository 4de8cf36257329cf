package main

import (
	"fmt"
	"os"

	"github.com/aretw0/switchboard/internal/cli"
	"github.com/aretw0/switchboard/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the toggle dependency graph",
	Long:  `Loads the toggles and outputs a Mermaid diagram (graph TD) of their dependencies, colored by current status.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, logger := setup(cmd)

		board, err := cli.CreateBoard(cmd.Context(), opts, logger, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading toggles: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(board.Toggles()))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
