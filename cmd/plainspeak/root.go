package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plainspeak/plainspeak/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "plainspeak",
	Short: "plainspeak runs English-like command sentences",
	Long: `plainspeak interprets imperative sentences like

    GET [text] FROM {notes.txt}.
    DOWNLOAD FROM {https://example.com} TO {page.html}.
    GET [text] FROM {a.txt} THEN SAVE [text] TO {b.txt}.

Brackets name variables, braces quote literals verbatim, and THEN chains
clauses that share one variable scope.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "plainspeak.yaml", "Path to the config file")
	rootCmd.PersistentFlags().String("session", "", "Session ID carrying variables between invocations")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session storage (host:port)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("strict", false, "Report ambiguous dispatch candidates as errors")
	rootCmd.PersistentFlags().Bool("patterns", false, "Use the pattern-engine matcher family")
}

// runOptions collects the persistent flags shared by the commands.
func runOptions(cmd *cobra.Command) cli.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	sessionID, _ := cmd.Flags().GetString("session")
	redisURL, _ := cmd.Flags().GetString("redis")
	debug, _ := cmd.Flags().GetBool("debug")
	strict, _ := cmd.Flags().GetBool("strict")
	patterns, _ := cmd.Flags().GetBool("patterns")
	return cli.RunOptions{
		ConfigPath: configPath,
		SessionID:  sessionID,
		RedisURL:   redisURL,
		Debug:      debug,
		Strict:     strict,
		Patterns:   patterns,
	}
}
