package utils

// TruncateSecret safely truncates a secret string for display.
// Returns a string like "abc123...wxyz" showing prefix and suffix.
// If the string is too short, returns a masked version.
func TruncateSecret(s string, prefixLen, suffixLen int) string {
	minLen := prefixLen + suffixLen
	if len(s) < minLen {
		if len(s) == 0 {
			return "(empty)"
		}
		return "***"
	}
	return s[:prefixLen] + "..." + s[len(s)-suffixLen:]
}

// TruncateWithEllipsis shortens a string for display by keeping the end
// and adding ellipsis at the beginning if it exceeds maxLen
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen+3:]
}

// TruncateEnd shortens a string for display by keeping the beginning
// and adding ellipsis at the end if it exceeds maxLen
func TruncateEnd(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
