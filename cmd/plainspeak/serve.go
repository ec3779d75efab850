package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/plainspeak/plainspeak/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the engine in server mode, exposing a JSON API over HTTP.
Each request runs inside a named session whose variables live in the
snapshot store (in-memory by default, Redis with --redis).`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		metrics, _ := cmd.Flags().GetBool("metrics")

		ctx, stop := cli.NewSignalContext(cmd.Context())
		defer stop()

		err := cli.Serve(ctx, cli.ServeOptions{
			RunOptions: runOptions(cmd),
			Port:       port,
			Metrics:    metrics,
		})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
}
