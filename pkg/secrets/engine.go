// Package secrets detects and redacts credential-shaped text in session
// transcripts. It scans strings against an ordered rule table with keyword
// and entropy heuristics, replaces detected spans with [REDACTED:<rule-id>]
// markers, and applies that redaction recursively across parsed JSON values.
package secrets

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// compiledRule pairs a rule with its compiled pattern
type compiledRule struct {
	rule     Rule
	re       *regexp.Regexp
	keywords []string // rule keywords, lowercased once at compile time
	// group is the capture group holding the secret value to score,
	// or 0 to score the whole match
	group int
}

// Engine scans text against a compiled rule table. It is safe for
// concurrent use: the rule table and keyword set are immutable after
// construction and the instrumentation counters are atomic.
type Engine struct {
	rules []compiledRule
	// keywords is the lowercase union of every keyword-gated rule's
	// keywords, used as a single prefilter for all of them at once
	keywords []string
	stats    Stats
}

// NewEngine compiles a rule table into a detection engine.
// An invalid pattern is a configuration defect and fails construction.
func NewEngine(rules []Rule) (*Engine, error) {
	engine := &Engine{}

	seen := make(map[string]bool, len(rules))
	for _, rule := range rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("rule with pattern %q has no id", rule.Pattern)
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = true

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for rule %q: %w", rule.ID, err)
		}

		group := 0
		if re.NumSubexp() > 0 {
			group = 1
		}

		engine.rules = append(engine.rules, compiledRule{
			rule:     rule,
			re:       re,
			keywords: lowerKeywords(rule.Keywords),
			group:    group,
		})
	}

	engine.keywords = keywordUnion(rules)
	return engine, nil
}

// NewDefaultEngine builds an engine from the built-in rule table.
// The default table is static data and always compiles.
func NewDefaultEngine() *Engine {
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("secrets: default rule table invalid: %v", err))
	}
	return engine
}

// RuleCount returns the number of compiled rules.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// Rules returns a copy of the engine's rule table in priority order.
func (e *Engine) Rules() []Rule {
	rules := make([]Rule, 0, len(e.rules))
	for _, cr := range e.rules {
		rules = append(rules, cr.rule)
	}
	return rules
}

// keywordUnion collects the deduplicated lowercase keywords of all rules,
// sorted for deterministic iteration.
func keywordUnion(rules []Rule) []string {
	seen := make(map[string]bool)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(kw)
			if kw != "" {
				seen[kw] = true
			}
		}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// containsAny reports whether lowered contains any of the given lowercase
// keywords as a substring.
func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func lowerKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}
