package secrets

import "fmt"

// MaxDepth is the recursion cap for SanitizeValue. Values nested deeper
// are returned unchanged rather than scanned.
const MaxDepth = 100

// Marker returns the redaction marker substituted for a detected span.
// The exact shape is part of the persisted transcript format and consumed
// by downstream tooling; do not change it.
func Marker(ruleID string) string {
	return fmt.Sprintf("[REDACTED:%s]", ruleID)
}

// SanitizeString returns content with every detected secret span replaced
// by its redaction marker. Text outside matched spans is copied verbatim.
// Content with no matches is returned unchanged.
func (e *Engine) SanitizeString(content string) string {
	if len(content) < MinSecretLength {
		return content
	}

	matches := e.Detect(content)
	if len(matches) == 0 {
		return content
	}

	// Replace in reverse offset order: earlier replacements change the
	// string length and would invalidate the remaining offsets.
	out := content
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		out = out[:m.Start] + Marker(m.RuleID) + out[m.End:]
	}
	return out
}

// SanitizeValue recursively redacts every string leaf of a JSON-shaped
// value (nil, bool, float64, string, []any, map[string]any), preserving
// array order and object key sets. String values under safe keys are
// trusted and passed through unscanned. Non-string scalars are returned
// as-is.
func (e *Engine) SanitizeValue(value any) any {
	return e.sanitizeValue(value, 0)
}

func (e *Engine) sanitizeValue(value any, depth int) any {
	if depth > MaxDepth {
		return value
	}

	switch v := value.(type) {
	case string:
		return e.SanitizeString(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = e.sanitizeValue(elem, depth+1)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			if s, ok := child.(string); ok && safeKeys[key] {
				out[key] = s
				continue
			}
			out[key] = e.sanitizeValue(child, depth+1)
		}
		return out
	default:
		return value
	}
}
