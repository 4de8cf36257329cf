package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/switchboard/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Switchboard loads and inspects feature toggle definitions",
	Long: `Switchboard reads declarative feature toggle definitions from a JSON or YAML
file, a directory of toggle documents, or a Redis list, links their
dependencies and reports which toggles are enabled.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "toggles.json", "JSON or YAML file with toggle definitions")
	rootCmd.PersistentFlags().String("dir", "", "Directory of toggle documents (replaces the default --file)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address to read toggles from (replaces the default --file)")
	rootCmd.PersistentFlags().String("redis-key", "", "Redis list holding the toggles")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
}

// sourceOptions reads the persistent flags. An explicit source flag wins over
// the default --file value.
func sourceOptions(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()

	opts := cli.Options{}
	opts.File, _ = flags.GetString("file")
	opts.Dir, _ = flags.GetString("dir")
	opts.RedisAddr, _ = flags.GetString("redis")
	opts.RedisKey, _ = flags.GetString("redis-key")
	opts.LogLevel, _ = flags.GetString("log-level")

	if !flags.Changed("file") && (opts.Dir != "" || opts.RedisAddr != "") {
		opts.File = ""
	}
	return opts
}

// setup resolves flags and logger, exiting on bad configuration.
func setup(cmd *cobra.Command) (cli.Options, *slog.Logger) {
	opts := sourceOptions(cmd)
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := opts.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	return opts, logger
}
