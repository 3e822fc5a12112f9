// Package discovery locates Claude Code session transcripts and their
// companion files under the Claude projects directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/logger"
)

// SessionInfo holds metadata about a discovered session
type SessionInfo struct {
	SessionID      string
	TranscriptPath string
	ProjectPath    string // relative path from the projects dir
	ModTime        time.Time
	SizeBytes      int64
}

// ScanAllSessions finds all session transcript files in the Claude
// projects directory, sorted by modification time (oldest first).
func ScanAllSessions() ([]SessionInfo, error) {
	projectsDir, err := config.GetProjectsDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get projects directory: %w", err)
	}

	if _, err := os.Stat(projectsDir); os.IsNotExist(err) {
		return nil, nil
	}

	var sessions []SessionInfo

	err = filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Failed to access path during scan: %s: %v", path, err)
			return nil // continue walking
		}

		if session := parseSessionFromPath(path, d, projectsDir); session != nil {
			sessions = append(sessions, *session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk projects directory: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.Before(sessions[j].ModTime)
	})

	return sessions, nil
}

// FindSessionByID finds a session transcript by full or partial ID.
// Returns the full session ID and transcript path.
func FindSessionByID(partialID string) (fullID string, transcriptPath string, err error) {
	sessions, err := ScanAllSessions()
	if err != nil {
		return "", "", err
	}

	var matches []SessionInfo
	for _, session := range sessions {
		if session.SessionID == partialID || strings.HasPrefix(session.SessionID, partialID) {
			matches = append(matches, session)
		}
	}

	if len(matches) == 0 {
		return "", "", fmt.Errorf("session not found: %s", partialID)
	}
	if len(matches) > 1 {
		return "", "", fmt.Errorf("ambiguous session ID '%s' matches %d sessions", partialID, len(matches))
	}

	return matches[0].SessionID, matches[0].TranscriptPath, nil
}

// parseSessionFromPath checks if a path is a valid session transcript and
// returns its SessionInfo. Transcript filenames are UUIDs; agent sidechain
// files use an agent- prefix and are collected separately per session.
func parseSessionFromPath(path string, d os.DirEntry, projectsDir string) *SessionInfo {
	if d.IsDir() {
		return nil
	}

	if !strings.HasSuffix(path, ".jsonl") {
		return nil
	}

	name := d.Name()
	if strings.HasPrefix(name, "agent-") {
		return nil
	}

	sessionID := strings.TrimSuffix(name, ".jsonl")
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil
	}

	info, err := d.Info()
	if err != nil {
		return nil
	}

	relPath, _ := filepath.Rel(projectsDir, filepath.Dir(path))

	return &SessionInfo{
		SessionID:      sessionID,
		TranscriptPath: path,
		ProjectPath:    relPath,
		ModTime:        info.ModTime(),
		SizeBytes:      info.Size(),
	}
}
