package main

import (
	"fmt"

	"github.com/aretw0/switchboard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of switchboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "switchboard version %s\n", switchboard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
