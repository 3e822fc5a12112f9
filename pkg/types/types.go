package types

import "time"

// HookInput represents the SessionEnd hook data from Claude Code
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	PermissionMode string `json:"permission_mode"`
	HookEventName  string `json:"hook_event_name"`
	Reason         string `json:"reason"`
}

// NewHookInput builds a HookInput for non-hook invocations (manual scrubs,
// interactive runs) so the rest of the pipeline has one input shape.
func NewHookInput(sessionID, transcriptPath, cwd, reason string) *HookInput {
	return &HookInput{
		SessionID:      sessionID,
		TranscriptPath: transcriptPath,
		CWD:            cwd,
		Reason:         reason,
	}
}

// HookResponse is the JSON response sent back to Claude Code
type HookResponse struct {
	Continue       bool   `json:"continue"`
	StopReason     string `json:"stopReason"`
	SuppressOutput bool   `json:"suppressOutput"`
}

// SessionFile represents a file discovered for a session
type SessionFile struct {
	Path      string
	Type      string // "transcript" | "agent"
	SizeBytes int64
}

// ScrubRun records one completed scrub of a transcript file
type ScrubRun struct {
	RunID      string
	SessionID  string
	SourcePath string
	OutputPath string
	Timestamp  time.Time
	Lines      int
	Redactions int
	SizeBytes  int64
}
