package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plainspeak/plainspeak"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of plainspeak",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plainspeak version %s\n", strings.TrimSpace(plainspeak.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
