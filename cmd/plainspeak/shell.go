package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plainspeak/plainspeak/internal/cli"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Starts a REPL where each line is a sentence. Variables persist across
sentences; with --session they also persist across shell restarts.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := cli.NewSignalContext(cmd.Context())
		defer stop()

		fresh, _ := cmd.Flags().GetBool("fresh")
		opts := cli.ShellOptions{RunOptions: runOptions(cmd), Fresh: fresh}
		if err := cli.Shell(ctx, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	shellCmd.Flags().Bool("fresh", false, "discard the session's saved variables before starting")
	rootCmd.AddCommand(shellCmd)
}
