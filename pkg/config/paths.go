package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ClaudeStateDirEnv overrides the default Claude state directory.
// Useful for testing and non-standard installations.
const ClaudeStateDirEnv = "SCRUBLOG_CLAUDE_DIR"

// ScrublogDirEnv overrides the default ~/.scrublog data directory.
const ScrublogDirEnv = "SCRUBLOG_DIR"

// GetClaudeStateDir returns the Claude state directory path.
// Defaults to ~/.claude but can be overridden with SCRUBLOG_CLAUDE_DIR.
func GetClaudeStateDir() (string, error) {
	if envDir := os.Getenv(ClaudeStateDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".claude"), nil
}

// GetProjectsDir returns the path to the Claude projects directory, the
// root under which session transcripts live.
func GetProjectsDir() (string, error) {
	claudeDir, err := GetClaudeStateDir()
	if err != nil {
		return "", fmt.Errorf("failed to get claude state directory: %w", err)
	}
	return filepath.Join(claudeDir, "projects"), nil
}

// GetScrublogDir returns the scrublog data directory (database, rules,
// logs, archived output). Defaults to ~/.scrublog.
func GetScrublogDir() (string, error) {
	if envDir := os.Getenv(ScrublogDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".scrublog"), nil
}

// GetArchiveDir returns the directory scrubbed transcripts are written to
// in hook mode.
func GetArchiveDir() (string, error) {
	dir, err := GetScrublogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archive"), nil
}
