package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/discovery"
	"github.com/scrublog/scrublog/pkg/logger"
	"github.com/scrublog/scrublog/pkg/secrets"
	"github.com/scrublog/scrublog/pkg/utils"
)

var scanJSON bool

// scanFinding is one reported match. The matched text is truncated so the
// report itself never leaks the secret.
type scanFinding struct {
	Line    int     `json:"line"`
	RuleID  string  `json:"rule_id"`
	Preview string  `json:"preview"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Entropy float64 `json:"entropy,omitempty"`
}

var scanCmd = &cobra.Command{
	Use:   "scan <file-or-session-id>",
	Short: "Scan a transcript for secrets without modifying it",
	Long: `Scans a transcript file (or a session resolved by full or partial ID)
and reports every secret the rule table detects. Nothing is written;
use 'scrublog clean' to produce a redacted copy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		path, err := resolveTranscript(args[0])
		if err != nil {
			return err
		}

		rules, err := secrets.LoadActiveRules()
		if err != nil {
			return fmt.Errorf("failed to load rules: %w", err)
		}
		engine, err := secrets.NewEngine(rules)
		if err != nil {
			return fmt.Errorf("failed to compile rules: %w", err)
		}

		logger.Info("Scanning %s with %d rules", path, engine.RuleCount())

		findings, err := scanFile(engine, path)
		if err != nil {
			return err
		}

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(findings)
		}

		if len(findings) == 0 {
			fmt.Println("No secrets found.")
			return nil
		}

		fmt.Printf("Found %d secret(s) in %s:\n\n", len(findings), path)
		for _, f := range findings {
			fmt.Printf("  line %d: %s (%s)\n", f.Line, f.Preview, f.RuleID)
		}
		fmt.Println()
		fmt.Println("Run 'scrublog clean' to write a redacted copy.")

		return nil
	},
}

// scanFile detects secrets line by line without writing anything
func scanFile(engine *secrets.Engine, path string) ([]scanFinding, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer file.Close()

	var findings []scanFinding

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, config.JSONLScanBufferSize), config.MaxJSONLLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		for _, m := range engine.Detect(scanner.Text()) {
			findings = append(findings, scanFinding{
				Line:    lineNum,
				RuleID:  m.RuleID,
				Preview: utils.TruncateSecret(m.Text, 8, 4),
				Start:   m.Start,
				End:     m.End,
				Entropy: m.Entropy,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	return findings, nil
}

// resolveTranscript accepts either a path to a transcript file or a
// full/partial session ID to look up in the Claude projects directory.
func resolveTranscript(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	_, path, err := discovery.FindSessionByID(arg)
	if err != nil {
		return "", fmt.Errorf("'%s' is not a file or a known session ID: %w", arg, err)
	}
	return path, nil
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output findings as JSON")
	rootCmd.AddCommand(scanCmd)
}
