package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetClaudeStateDir(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name   string
		envVal string
		want   string
	}{
		{
			name:   "default to ~/.claude",
			envVal: "",
			want:   filepath.Join(home, ".claude"),
		},
		{
			name:   "override with env var",
			envVal: "/tmp/custom-claude",
			want:   "/tmp/custom-claude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ClaudeStateDirEnv, tt.envVal)

			got, err := GetClaudeStateDir()
			if err != nil {
				t.Fatalf("GetClaudeStateDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetClaudeStateDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetProjectsDir(t *testing.T) {
	t.Setenv(ClaudeStateDirEnv, "/tmp/claude-state")

	got, err := GetProjectsDir()
	if err != nil {
		t.Fatalf("GetProjectsDir() error = %v", err)
	}
	want := filepath.Join("/tmp/claude-state", "projects")
	if got != want {
		t.Errorf("GetProjectsDir() = %v, want %v", got, want)
	}
}

func TestGetScrublogDir(t *testing.T) {
	home, _ := os.UserHomeDir()

	t.Run("default", func(t *testing.T) {
		t.Setenv(ScrublogDirEnv, "")
		got, err := GetScrublogDir()
		if err != nil {
			t.Fatalf("GetScrublogDir() error = %v", err)
		}
		if got != filepath.Join(home, ".scrublog") {
			t.Errorf("GetScrublogDir() = %v", got)
		}
	})

	t.Run("override", func(t *testing.T) {
		t.Setenv(ScrublogDirEnv, "/tmp/custom-scrublog")
		got, err := GetScrublogDir()
		if err != nil {
			t.Fatalf("GetScrublogDir() error = %v", err)
		}
		if got != "/tmp/custom-scrublog" {
			t.Errorf("GetScrublogDir() = %v", got)
		}
	})
}

func TestGetArchiveDir(t *testing.T) {
	t.Setenv(ScrublogDirEnv, "/tmp/custom-scrublog")

	got, err := GetArchiveDir()
	if err != nil {
		t.Fatalf("GetArchiveDir() error = %v", err)
	}
	want := filepath.Join("/tmp/custom-scrublog", "archive")
	if got != want {
		t.Errorf("GetArchiveDir() = %v, want %v", got, want)
	}
}
