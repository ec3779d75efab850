package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plainspeak/plainspeak/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <sentence>",
	Short: "Run one sentence",
	Long: `Runs a single sentence and prints the outcome. Quote the sentence so
the shell does not eat the braces:

    plainspeak run 'GET [text] FROM {notes.txt}.'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions(cmd)
		opts.JSON, _ = cmd.Flags().GetBool("json")

		sentence := strings.Join(args, " ")

		ctx, stop := cli.NewSignalContext(cmd.Context())
		defer stop()

		if err := cli.Run(ctx, opts, sentence); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Print the result as JSON")
}
