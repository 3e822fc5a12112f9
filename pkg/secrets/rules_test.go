package secrets

import (
	"regexp"
	"testing"
)

// TestDefaultRulesCompile tests that every built-in rule has a valid
// pattern and a unique id
func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		t.Fatalf("Default rule table failed to compile: %v", err)
	}
	if engine.RuleCount() != len(DefaultRules()) {
		t.Errorf("Expected %d compiled rules, got %d", len(DefaultRules()), engine.RuleCount())
	}
}

// TestDefaultRuleIDs tests that the rule ids referenced by callers and
// downstream tooling exist in the table
func TestDefaultRuleIDs(t *testing.T) {
	ids := make(map[string]bool)
	for _, rule := range DefaultRules() {
		ids[rule.ID] = true
	}

	for _, want := range []string{
		"anthropic-api-key",
		"openai-api-key",
		"aws-access-token",
		"github-pat",
		"slack-webhook-url",
		"generic-api-key",
		"generic-secret",
	} {
		if !ids[want] {
			t.Errorf("Missing expected rule id %q", want)
		}
	}
}

// TestDefaultRuleIDsMarkerSafe tests that rule ids only use characters
// that keep the redaction marker parseable
func TestDefaultRuleIDsMarkerSafe(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]+$`)
	for _, rule := range DefaultRules() {
		if !valid.MatchString(rule.ID) {
			t.Errorf("Rule id %q contains characters outside [a-z0-9-]", rule.ID)
		}
	}
}

// TestExactlyOnePathRejectingRule tests that the path false-positive guard
// stays scoped to the generic catch-all
func TestExactlyOnePathRejectingRule(t *testing.T) {
	count := 0
	for _, rule := range DefaultRules() {
		if rule.RejectPaths {
			count++
			if rule.ID != "generic-secret" {
				t.Errorf("Unexpected path-rejecting rule %q", rule.ID)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 path-rejecting rule, got %d", count)
	}
}

// TestNewEngineRejectsInvalidRules tests construction-time validation
func TestNewEngineRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"Invalid pattern", []Rule{{ID: "bad", Pattern: `[invalid(`}}},
		{"Missing id", []Rule{{Pattern: `abc`}}},
		{"Duplicate id", []Rule{{ID: "dup", Pattern: `a`}, {ID: "dup", Pattern: `b`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.rules); err == nil {
				t.Error("Expected error from NewEngine")
			}
		})
	}
}

// TestKeywordUnion tests that the prefilter set is the lowercase union of
// all rules' keywords
func TestKeywordUnion(t *testing.T) {
	rules := []Rule{
		{ID: "a", Pattern: `a+`, Keywords: []string{"Alpha", "shared"}},
		{ID: "b", Pattern: `b+`, Keywords: []string{"beta", "SHARED"}},
		{ID: "c", Pattern: `c+`},
	}

	union := keywordUnion(rules)
	want := []string{"alpha", "beta", "shared"}
	if len(union) != len(want) {
		t.Fatalf("keywordUnion = %v, want %v", union, want)
	}
	for i, kw := range want {
		if union[i] != kw {
			t.Errorf("keywordUnion[%d] = %q, want %q", i, union[i], kw)
		}
	}
}
