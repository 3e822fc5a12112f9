package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/db"
	"github.com/scrublog/scrublog/pkg/discovery"
	"github.com/scrublog/scrublog/pkg/extract"
	"github.com/scrublog/scrublog/pkg/logger"
	"github.com/scrublog/scrublog/pkg/secrets"
	"github.com/scrublog/scrublog/pkg/types"
	"github.com/scrublog/scrublog/pkg/utils"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Scrub session data (called by SessionEnd hook)",
	Long: `Reads session metadata from stdin, discovers the transcript and any
agent sidechain files, and writes redacted copies to the archive directory.
This command is automatically called by the Claude Code SessionEnd hook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		logger.Info("Starting session scrub")

		// Always output valid hook response, even on error
		defer func() {
			response := types.HookResponse{
				Continue:       true,
				StopReason:     "",
				SuppressOutput: false,
			}
			json.NewEncoder(os.Stdout).Encode(response)
		}()

		fmt.Fprintln(os.Stderr, "=== Scrublog: Scrub Session ===")
		fmt.Fprintln(os.Stderr)

		hookInput, err := discovery.ReadHookInput(cmd.InOrStdin())
		if err != nil {
			logger.Error("Failed to read hook input: %v", err)
			fmt.Fprintf(os.Stderr, "Error reading hook input: %v\n", err)
			return nil // Don't return error - let defer send success response
		}

		logger.Info("Session ID: %s", hookInput.SessionID)
		logger.Info("Transcript: %s", hookInput.TranscriptPath)
		logger.Info("End Reason: %s", hookInput.Reason)

		fmt.Fprintf(os.Stderr, "Session ID: %s\n", hookInput.SessionID)
		fmt.Fprintf(os.Stderr, "Transcript: %s\n", hookInput.TranscriptPath)
		fmt.Fprintln(os.Stderr)

		files, err := discovery.DiscoverSessionFiles(hookInput)
		if err != nil {
			logger.Error("Failed to discover files: %v", err)
			fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
			return nil
		}

		rules, err := secrets.LoadActiveRules()
		if err != nil {
			logger.Error("Failed to load rules: %v", err)
			fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
			return nil
		}
		engine, err := secrets.NewEngine(rules)
		if err != nil {
			logger.Error("Failed to compile rules: %v", err)
			fmt.Fprintf(os.Stderr, "Error compiling rules: %v\n", err)
			return nil
		}

		archiveDir, err := config.GetArchiveDir()
		if err != nil {
			logger.Error("Failed to get archive directory: %v", err)
			fmt.Fprintf(os.Stderr, "Error getting archive directory: %v\n", err)
			return nil
		}
		sessionDir := filepath.Join(archiveDir, hookInput.SessionID)

		database, err := db.Open()
		if err != nil {
			logger.Error("Failed to open database: %v", err)
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			return nil
		}
		defer database.Close()

		fmt.Fprintf(os.Stderr, "Scrubbing %d file(s):\n", len(files))

		totalRedactions := 0
		for _, f := range files {
			dstPath := filepath.Join(sessionDir, filepath.Base(f.Path))

			result, err := extract.ScrubFile(engine, f.Path, dstPath)
			if err != nil {
				logger.Error("Failed to scrub %s: %v", f.Path, err)
				fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", filepath.Base(f.Path), err)
				continue
			}
			totalRedactions += result.TotalRedactions

			logger.Info("Scrubbed %s: %d lines, %d redactions",
				f.Path, result.Lines, result.TotalRedactions)
			fmt.Fprintf(os.Stderr, "  ✓ %s (%s, %s)\n",
				filepath.Base(f.Path),
				utils.FormatBytes(result.ScrubbedBytes),
				utils.FormatRedactions(result.TotalRedactions))

			run := &types.ScrubRun{
				RunID:      uuid.NewString(),
				SessionID:  hookInput.SessionID,
				SourcePath: f.Path,
				OutputPath: dstPath,
				Timestamp:  time.Now(),
				Lines:      result.Lines,
				Redactions: result.TotalRedactions,
				SizeBytes:  result.ScrubbedBytes,
			}
			if err := database.InsertRun(run, result.ByRule); err != nil {
				logger.Warn("Failed to record run for %s: %v", f.Path, err)
			}
		}

		logger.Info("Session scrub complete: %d total redactions", totalRedactions)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Archive: %s\n", sessionDir)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "=== Session Scrubbed ===")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
