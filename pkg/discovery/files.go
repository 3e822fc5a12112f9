package discovery

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/logger"
	"github.com/scrublog/scrublog/pkg/types"
)

// ReadHookInput parses the SessionEnd hook payload from r (stdin in hook
// mode).
func ReadHookInput(r io.Reader) (*types.HookInput, error) {
	var hookInput types.HookInput
	if err := json.NewDecoder(r).Decode(&hookInput); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}

	if hookInput.SessionID == "" {
		return nil, fmt.Errorf("hook input missing session_id")
	}
	if hookInput.TranscriptPath == "" {
		return nil, fmt.Errorf("hook input missing transcript_path")
	}

	return &hookInput, nil
}

// DiscoverSessionFiles finds all files associated with a session: the main
// transcript plus any agent sidechain transcripts it references.
func DiscoverSessionFiles(hookInput *types.HookInput) ([]types.SessionFile, error) {
	transcriptPath := expandPath(hookInput.TranscriptPath)

	transcriptInfo, err := os.Stat(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("transcript file not found: %w", err)
	}

	files := []types.SessionFile{{
		Path:      transcriptPath,
		Type:      "transcript",
		SizeBytes: transcriptInfo.Size(),
	}}

	agentIDs, err := findAgentReferences(transcriptPath)
	if err != nil {
		// The transcript alone is still worth scrubbing
		logger.Warn("Failed to parse transcript for agent references: %v", err)
		return files, nil
	}

	transcriptDir := filepath.Dir(transcriptPath)
	for _, agentID := range agentIDs {
		agentPath := filepath.Join(transcriptDir, fmt.Sprintf("agent-%s.jsonl", agentID))
		if agentInfo, err := os.Stat(agentPath); err == nil {
			files = append(files, types.SessionFile{
				Path:      agentPath,
				Type:      "agent",
				SizeBytes: agentInfo.Size(),
			})
		}
	}

	return files, nil
}

// findAgentReferences parses a transcript for agent sidechain IDs,
// recorded in toolUseResult.agentId fields of task tool results.
func findAgentReferences(transcriptPath string) ([]string, error) {
	file, err := os.Open(transcriptPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	seen := make(map[string]bool)
	var agentIDs []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, config.JSONLScanBufferSize), config.MaxJSONLLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry struct {
			ToolUseResult struct {
				AgentID string `json:"agentId"`
			} `json:"toolUseResult"`
		}
		if err := json.Unmarshal(line, &entry); err != nil {
			continue // skip malformed lines
		}

		if id := entry.ToolUseResult.AgentID; id != "" && !seen[id] {
			seen[id] = true
			agentIDs = append(agentIDs, id)
		}
	}

	if err := scanner.Err(); err != nil {
		return agentIDs, fmt.Errorf("failed to scan transcript: %w", err)
	}

	return agentIDs, nil
}

// expandPath resolves a leading ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
