package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	rulesFileName         = "rules.json"
	disabledRulesFileName = "rules.json.disabled"
)

// ScrublogDirEnv overrides the default ~/.scrublog directory. Used by
// tests and non-standard installations.
const ScrublogDirEnv = "SCRUBLOG_DIR"

// RulesFile is the on-disk shape of a user rule table.
type RulesFile struct {
	Rules []Rule `json:"rules"`
}

// GetRulesPath returns the path to the active rules file.
func GetRulesPath() string {
	return rulesPathInDir(scrublogDir())
}

// GetDisabledRulesPath returns the path to the deactivated rules file.
func GetDisabledRulesPath() string {
	return disabledRulesPathInDir(scrublogDir())
}

// CustomRulesEnabled reports whether a user rules file is active.
func CustomRulesEnabled() bool {
	_, err := os.Stat(GetRulesPath())
	return err == nil
}

// LoadActiveRules returns the user rule table when one is enabled, and the
// built-in table otherwise.
func LoadActiveRules() ([]Rule, error) {
	if !CustomRulesEnabled() {
		return DefaultRules(), nil
	}
	file, err := loadRulesFromPath(GetRulesPath())
	if err != nil {
		return nil, err
	}
	return file.Rules, nil
}

// InitializeDefaultRules writes the built-in table as a user rules file.
// The file is created deactivated so enabling is an explicit step.
func InitializeDefaultRules() error {
	return saveRulesToPath(GetDisabledRulesPath(), RulesFile{Rules: DefaultRules()})
}

// EnableCustomRules activates the user rules file by renaming it.
func EnableCustomRules() error {
	return enableInDir(scrublogDir())
}

// DisableCustomRules deactivates the user rules file by renaming it.
func DisableCustomRules() error {
	return disableInDir(scrublogDir())
}

// --- Internal functions, parameterized by directory for testability ---

func scrublogDir() string {
	if dir := os.Getenv(ScrublogDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scrublog")
}

func rulesPathInDir(dir string) string {
	return filepath.Join(dir, rulesFileName)
}

func disabledRulesPathInDir(dir string) string {
	return filepath.Join(dir, disabledRulesFileName)
}

func loadRulesFromPath(path string) (RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RulesFile{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file RulesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return RulesFile{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	return file, nil
}

func saveRulesToPath(path string, file RulesFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	return nil
}

func enableInDir(dir string) error {
	disabledPath := disabledRulesPathInDir(dir)
	enabledPath := rulesPathInDir(dir)

	if _, err := os.Stat(disabledPath); os.IsNotExist(err) {
		return fmt.Errorf("no deactivated rules file found at %s", disabledPath)
	}

	if err := os.Rename(disabledPath, enabledPath); err != nil {
		return fmt.Errorf("failed to enable custom rules: %w", err)
	}

	return nil
}

func disableInDir(dir string) error {
	enabledPath := rulesPathInDir(dir)
	disabledPath := disabledRulesPathInDir(dir)

	if _, err := os.Stat(enabledPath); os.IsNotExist(err) {
		return fmt.Errorf("no active rules file found at %s", enabledPath)
	}

	if err := os.Rename(enabledPath, disabledPath); err != nil {
		return fmt.Errorf("failed to disable custom rules: %w", err)
	}

	return nil
}
