package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/db"
	"github.com/scrublog/scrublog/pkg/utils"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent scrub runs",
	Long:  `Displays the database location and the most recent scrub runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("=== Scrublog: Runs ===")
		fmt.Println()

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		fmt.Printf("Database: %s\n", database.Path())

		count, err := database.GetRunCount()
		if err != nil {
			return fmt.Errorf("failed to get run count: %w", err)
		}
		total, err := database.GetTotalRedactions()
		if err != nil {
			return fmt.Errorf("failed to get redaction total: %w", err)
		}
		fmt.Printf("Total Runs: %d (%s)\n", count, utils.FormatRedactions(total))
		fmt.Println()

		if count == 0 {
			fmt.Println("No scrub runs recorded yet.")
			return nil
		}

		runs, err := database.GetRecentRuns(runsLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent runs: %w", err)
		}

		fmt.Println("Recent Runs:")
		for _, r := range runs {
			sessionID := r.SessionID
			if len(sessionID) > config.SessionIDDisplayLength {
				sessionID = sessionID[:config.SessionIDDisplayLength]
			}
			fmt.Printf("  %s - %s (%d lines, %s, %s)\n",
				sessionID,
				humanize.Time(r.Timestamp),
				r.Lines,
				utils.FormatRedactions(r.Redactions),
				utils.FormatBytes(r.SizeBytes),
			)
		}

		return nil
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", config.DefaultRecentRuns, "Number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
