package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count for display, e.g. "1.2 MB"
func FormatBytes(bytes int64) string {
	return humanize.Bytes(uint64(bytes))
}

// FormatRedactions renders a redaction total with correct pluralization
func FormatRedactions(count int) string {
	if count == 1 {
		return "1 redaction"
	}
	return fmt.Sprintf("%d redactions", count)
}
