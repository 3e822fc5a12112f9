package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scrublog",
	Short: "Detect and redact secrets in Claude Code session transcripts",
	Long: `Scrublog scans Claude Code session transcripts for leaked secrets
(API keys, tokens, passwords, credentials) and writes redacted copies with
[REDACTED:<rule>] markers in place of each match.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
