package secrets

import (
	"regexp"
	"sort"
	"strings"
)

// MinSecretLength is the shortest content that can contain a usable secret.
// Anything shorter is returned untouched without running any rule.
const MinSecretLength = 8

// Match is one detected secret span. Offsets are half-open byte offsets
// into the scanned string. Entropy is set only for entropy-gated rules.
type Match struct {
	RuleID  string  `json:"rule_id"`
	Text    string  `json:"text"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Entropy float64 `json:"entropy,omitempty"`
}

var fileExtensionSuffix = regexp.MustCompile(`\.[a-zA-Z0-9]{1,5}$`)

// Detect scans content and returns all detected secrets, sorted ascending
// by start offset and pairwise non-overlapping. When two rules match
// overlapping spans the rule earlier in the table wins; there is no
// separate priority field, rule order is the priority.
func (e *Engine) Detect(content string) []Match {
	e.stats.calls.Add(1)

	if len(content) < MinSecretLength {
		return nil
	}

	// One pass over the keyword union decides whether any keyword-gated
	// rule can possibly fire. Ordinary prose short-circuits here.
	lowered := strings.ToLower(content)
	keywordHit := containsAny(lowered, e.keywords)
	if keywordHit {
		e.stats.keywordHits.Add(1)
	}

	var matches []Match
	for _, cr := range e.rules {
		if len(cr.keywords) > 0 {
			if !keywordHit {
				continue
			}
			if !containsAny(lowered, cr.keywords) {
				continue
			}
		}
		e.stats.rulesRun.Add(1)
		matches = append(matches, e.runRule(cr, content)...)
	}

	matches = dedupeMatches(matches)
	e.stats.matches.Add(int64(len(matches)))
	return matches
}

// runRule finds all non-overlapping occurrences of one rule's pattern and
// applies the rule's false-positive filters.
func (e *Engine) runRule(cr compiledRule, content string) []Match {
	var out []Match

	for _, idx := range cr.re.FindAllStringSubmatchIndex(content, -1) {
		start, end := idx[0], idx[1]
		if end <= start {
			continue
		}

		// The value to score is the first capture group when the
		// pattern defines one; the pattern may then include context
		// (e.g. `api_key = "..."`) without it skewing the heuristics.
		valueStart, valueEnd := start, end
		if cr.group > 0 {
			gs, ge := idx[cr.group*2], idx[cr.group*2+1]
			if gs < 0 || ge <= gs {
				continue
			}
			valueStart, valueEnd = gs, ge
		}
		value := content[valueStart:valueEnd]

		match := Match{
			RuleID: cr.rule.ID,
			Text:   content[start:end],
			Start:  start,
			End:    end,
		}

		if cr.rule.Entropy > 0 {
			entropy := ShannonEntropy(value)
			if entropy < cr.rule.Entropy {
				continue
			}
			match.Entropy = entropy
		}

		if cr.rule.RejectAllHex && isAllHex(value) {
			continue
		}

		if cr.rule.RejectPaths && looksLikePath(value) {
			continue
		}

		out = append(out, match)
	}

	return out
}

// dedupeMatches sorts matches by start offset (stable, so ties keep rule
// table order) and drops any match overlapping an earlier kept one.
func dedupeMatches(matches []Match) []Match {
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})

	kept := matches[:1]
	for _, m := range matches[1:] {
		if m.Start >= kept[len(kept)-1].End {
			kept = append(kept, m)
		}
	}
	return kept
}

// isAllHex reports whether value consists entirely of hex digits.
func isAllHex(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// looksLikePath reports whether value is shaped like a filesystem path
// rather than a secret: it ends with a separator or a short
// file-extension-like suffix.
func looksLikePath(value string) bool {
	if strings.HasSuffix(value, "/") {
		return true
	}
	return fileExtensionSuffix.MatchString(value)
}
