package main

import (
	"fmt"
	"os"

	"github.com/aretw0/switchboard/internal/cli"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <redis-address>",
	Short: "Publish toggle definitions to Redis",
	Long: `Validates the definitions from --file or --dir, replaces the Redis list with
them and notifies running servers watching the same key.

A missing file or directory is an error. An empty batch is refused unless
--allow-empty is set, since it clears the stored list.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, logger := setup(cmd)
		allowEmpty, _ := cmd.Flags().GetBool("allow-empty")

		n, err := cli.Push(cmd.Context(), opts, args[0], allowEmpty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger.Info("Toggles published", "toggles", n, "redis", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Published %d toggles to %s\n", n, args[0])
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().Bool("allow-empty", false, "Allow publishing an empty batch, clearing the stored list")
}
