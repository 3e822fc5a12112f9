package secrets

// safeKeys lists transcript field names whose string values are
// schema-known structural data (identifiers, timestamps, type tags), not
// free text. String values under these keys are passed through unscanned:
// they cannot carry user content, and some (UUIDs, request IDs) look
// high-entropy enough to trip the generic rules.
//
// Matching is by key name only, at any depth. Only scalar string values are
// exempted; a nested object under a safe key is still walked.
var safeKeys = map[string]bool{
	"uuid":          true,
	"parentUuid":    true,
	"sessionId":     true,
	"requestId":     true,
	"leafUuid":      true,
	"id":            true,
	"tool_use_id":   true,
	"type":          true,
	"subtype":       true,
	"role":          true,
	"model":         true,
	"timestamp":     true,
	"version":       true,
	"cwd":           true,
	"gitBranch":     true,
	"userType":      true,
	"name":          true,
	"slug":          true,
	"level":         true,
	"stop_reason":   true,
	"stop_sequence": true,
}

// IsSafeKey reports whether key is exempt from string scanning.
func IsSafeKey(key string) bool {
	return safeKeys[key]
}
