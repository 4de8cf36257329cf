package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/switchboard/internal/cli"
	"github.com/aretw0/switchboard/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the toggle definitions for consistency",
	Long:  `Reports every missing name, duplicate name, unknown dependency and dependency cycle instead of stopping at the first one.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, _ := setup(cmd)

		if err := runValidate(cmd.Context(), opts); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed:\n%v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Toggles are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, opts cli.Options) error {
	records, err := cli.ReadRecords(ctx, opts)
	if err != nil {
		return err
	}
	return validator.ValidateRecords(records)
}
