package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/logger"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage scrublog logs",
	Long:  "View or manage scrublog CLI logs",
}

func logDir() (string, error) {
	dir, err := config.GetScrublogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

var logsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print log directory path",
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := logDir()
		if err != nil {
			logger.Error("Failed to get log directory: %v", err)
			os.Exit(1)
		}
		fmt.Println(dir)
	},
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all log files",
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := logDir()
		if err != nil {
			logger.Error("Failed to get log directory: %v", err)
			os.Exit(1)
		}

		files, err := filepath.Glob(filepath.Join(dir, "scrublog.log*"))
		if err != nil {
			logger.Error("Failed to list logs: %v", err)
			os.Exit(1)
		}

		if len(files) == 0 {
			fmt.Println("No log files found")
			return
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				logger.Warn("Failed to stat %s: %v", file, err)
				continue
			}
			fmt.Printf("%s (%d bytes)\n", filepath.Base(file), info.Size())
		}
	},
}

var logsTailLines int

var logsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the last lines of the current log file",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := logDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "scrublog.log"))
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No log file found")
				return nil
			}
			return fmt.Errorf("failed to read log file: %w", err)
		}

		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) > logsTailLines {
			lines = lines[len(lines)-logsTailLines:]
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all old log files (keeps current)",
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := logDir()
		if err != nil {
			logger.Error("Failed to get log directory: %v", err)
			os.Exit(1)
		}

		// Match rotated logs (scrublog.log.* but not scrublog.log)
		files, err := filepath.Glob(filepath.Join(dir, "scrublog.log.*"))
		if err != nil {
			logger.Error("Failed to list logs: %v", err)
			os.Exit(1)
		}

		if len(files) == 0 {
			fmt.Println("No old log files to delete")
			return
		}

		deletedCount := 0
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				logger.Warn("Failed to delete %s: %v", filepath.Base(file), err)
			} else {
				fmt.Printf("Deleted %s\n", filepath.Base(file))
				deletedCount++
			}
		}

		fmt.Printf("\nDeleted %d old log file(s)\n", deletedCount)
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPathCmd)
	logsCmd.AddCommand(logsListCmd)
	logsTailCmd.Flags().IntVarP(&logsTailLines, "lines", "n", 50, "Number of lines to show")
	logsCmd.AddCommand(logsTailCmd)
	logsCmd.AddCommand(logsClearCmd)
}
