package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/switchboard"
	"github.com/aretw0/switchboard/internal/cli"
	httpAdapter "github.com/aretw0/switchboard/pkg/adapters/http"
	"github.com/aretw0/switchboard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP toggle server",
	Long:  `Serves toggle statuses as JSON over HTTP, exposes Prometheus metrics and reloads when the source changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, logger := setup(cmd)
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error registering metrics: %v\n", err)
			os.Exit(1)
		}

		board, err := cli.CreateBoard(ctx, opts, logger, metrics)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading toggles: %v\n", err)
			os.Exit(1)
		}

		if watch {
			go func() {
				err := board.AutoReload(ctx)
				if errors.Is(err, switchboard.ErrWatchUnsupported) {
					logger.Warn("Source cannot be watched, use POST /reload", "source", opts.Describe())
				} else if err != nil {
					logger.Error("Watcher stopped", "err", err)
				}
			}()
		}

		srv := &http.Server{
			Addr: ":" + port,
			Handler: httpAdapter.NewHandler(board,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithVersion(switchboard.Version),
			),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Switchboard Server on %s\n", srv.Addr)
			fmt.Printf("Serving toggles from: %s\n", opts.Describe())
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)

		case <-ctx.Done():
			fmt.Println("\nStart shutdown...")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Switchboard Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("watch", true, "Reload when the source changes")
}
