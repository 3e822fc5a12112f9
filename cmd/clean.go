package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/scrublog/scrublog/pkg/db"
	"github.com/scrublog/scrublog/pkg/extract"
	"github.com/scrublog/scrublog/pkg/logger"
	"github.com/scrublog/scrublog/pkg/secrets"
	"github.com/scrublog/scrublog/pkg/types"
	"github.com/scrublog/scrublog/pkg/utils"
)

var (
	cleanOutput string
	cleanStats  bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file-or-session-id>...",
	Short: "Write redacted copies of transcripts",
	Long: `Scrubs one or more transcript files (or sessions resolved by full or
partial ID) and writes redacted copies. Every detected secret is replaced
with a [REDACTED:<rule>] marker. The originals are never modified.

Each run is recorded in the local database; see 'scrublog runs'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		if cleanOutput != "" && len(args) > 1 {
			return fmt.Errorf("--output can only be used with a single input")
		}

		rules, err := secrets.LoadActiveRules()
		if err != nil {
			return fmt.Errorf("failed to load rules: %w", err)
		}
		engine, err := secrets.NewEngine(rules)
		if err != nil {
			return fmt.Errorf("failed to compile rules: %w", err)
		}

		for _, arg := range args {
			if err := cleanOne(engine, arg); err != nil {
				return err
			}
		}

		if cleanStats {
			printEngineStats(engine)
		}

		return nil
	},
}

func cleanOne(engine *secrets.Engine, arg string) error {
	srcPath, err := resolveTranscript(arg)
	if err != nil {
		return err
	}

	dstPath := cleanOutput
	if dstPath == "" {
		dstPath = extract.OutputPath(srcPath)
	}

	logger.Info("Scrubbing %s -> %s", srcPath, dstPath)

	result, err := extract.ScrubFile(engine, srcPath, dstPath)
	if err != nil {
		logger.Error("Scrub failed: %v", err)
		return err
	}

	run := &types.ScrubRun{
		RunID:      uuid.NewString(),
		SessionID:  arg,
		SourcePath: srcPath,
		OutputPath: dstPath,
		Timestamp:  time.Now(),
		Lines:      result.Lines,
		Redactions: result.TotalRedactions,
		SizeBytes:  result.ScrubbedBytes,
	}
	if err := recordRun(run, result.ByRule); err != nil {
		// The scrubbed file exists; losing the record is not fatal
		logger.Warn("Failed to record run: %v", err)
	}

	fmt.Printf("✓ Scrubbed %d line(s) (%s)\n", result.Lines, utils.FormatBytes(result.OriginalBytes))
	fmt.Printf("✓ Wrote %s\n", dstPath)
	fmt.Println()
	printRedactionSummary(result)

	return nil
}

// recordRun stores a completed scrub run in the archive database
func recordRun(run *types.ScrubRun, byRule map[string]int) error {
	database, err := db.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	return database.InsertRun(run, byRule)
}

func printRedactionSummary(result *extract.Result) {
	if result.TotalRedactions == 0 {
		fmt.Println("No secrets found.")
		return
	}

	fmt.Printf("%s:\n", utils.FormatRedactions(result.TotalRedactions))

	ruleIDs := make([]string, 0, len(result.ByRule))
	for ruleID := range result.ByRule {
		ruleIDs = append(ruleIDs, ruleID)
	}
	sort.Strings(ruleIDs)

	for _, ruleID := range ruleIDs {
		fmt.Printf("  - %s: %d\n", ruleID, result.ByRule[ruleID])
	}
}

func printEngineStats(engine *secrets.Engine) {
	stats := engine.Stats()
	fmt.Println()
	fmt.Println("Engine stats:")
	fmt.Printf("  detect calls:  %d\n", stats.Calls)
	fmt.Printf("  keyword hits:  %d\n", stats.KeywordHits)
	fmt.Printf("  rules run:     %d\n", stats.RulesRun)
	fmt.Printf("  matches:       %d\n", stats.Matches)
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "Output path (default: <source>.scrubbed.jsonl)")
	cleanCmd.Flags().BoolVar(&cleanStats, "stats", false, "Print engine counters after scrubbing")
	rootCmd.AddCommand(cleanCmd)
}
