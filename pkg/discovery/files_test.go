package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scrublog/scrublog/pkg/types"
)

func TestReadHookInput(t *testing.T) {
	input := `{"session_id":"abc123","transcript_path":"/tmp/session.jsonl","cwd":"/home/user","hook_event_name":"SessionEnd","reason":"exit"}`

	hookInput, err := ReadHookInput(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadHookInput failed: %v", err)
	}
	if hookInput.SessionID != "abc123" {
		t.Errorf("SessionID = %q", hookInput.SessionID)
	}
	if hookInput.TranscriptPath != "/tmp/session.jsonl" {
		t.Errorf("TranscriptPath = %q", hookInput.TranscriptPath)
	}
	if hookInput.Reason != "exit" {
		t.Errorf("Reason = %q", hookInput.Reason)
	}
}

func TestReadHookInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid JSON", `{not json`},
		{"missing session_id", `{"transcript_path":"/tmp/x.jsonl"}`},
		{"missing transcript_path", `{"session_id":"abc123"}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadHookInput(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDiscoverSessionFiles(t *testing.T) {
	dir := t.TempDir()

	agentID := "a1b2c3d4"
	transcript := filepath.Join(dir, sessionA+".jsonl")
	content := `{"type":"user","message":"hello"}` + "\n" +
		`{"type":"user","toolUseResult":{"agentId":"` + agentID + `"}}` + "\n"
	if err := os.WriteFile(transcript, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	agentPath := filepath.Join(dir, "agent-"+agentID+".jsonl")
	if err := os.WriteFile(agentPath, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	hookInput := &types.HookInput{
		SessionID:      sessionA,
		TranscriptPath: transcript,
	}

	files, err := DiscoverSessionFiles(hookInput)
	if err != nil {
		t.Fatalf("DiscoverSessionFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Type != "transcript" || files[0].Path != transcript {
		t.Errorf("unexpected first file: %+v", files[0])
	}
	if files[1].Type != "agent" || files[1].Path != agentPath {
		t.Errorf("unexpected second file: %+v", files[1])
	}
}

func TestDiscoverSessionFilesMissingAgent(t *testing.T) {
	dir := t.TempDir()

	transcript := filepath.Join(dir, sessionA+".jsonl")
	content := `{"toolUseResult":{"agentId":"missing-agent"}}` + "\n"
	if err := os.WriteFile(transcript, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverSessionFiles(&types.HookInput{
		SessionID:      sessionA,
		TranscriptPath: transcript,
	})
	if err != nil {
		t.Fatalf("DiscoverSessionFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("got %d files, want 1 (agent file does not exist)", len(files))
	}
}

func TestDiscoverSessionFilesMissingTranscript(t *testing.T) {
	_, err := DiscoverSessionFiles(&types.HookInput{
		SessionID:      sessionA,
		TranscriptPath: filepath.Join(t.TempDir(), "nope.jsonl"),
	})
	if err == nil {
		t.Error("expected error for missing transcript")
	}
}

func TestFindAgentReferencesDedup(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "t.jsonl")
	content := `{"toolUseResult":{"agentId":"agent-1"}}` + "\n" +
		`{"toolUseResult":{"agentId":"agent-1"}}` + "\n" +
		`{"toolUseResult":{"agentId":"agent-2"}}` + "\n" +
		"not json\n"
	if err := os.WriteFile(transcript, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ids, err := findAgentReferences(transcript)
	if err != nil {
		t.Fatalf("findAgentReferences failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "agent-1" || ids[1] != "agent-2" {
		t.Errorf("ids = %v", ids)
	}
}
