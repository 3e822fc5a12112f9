package config

// Application constants - centralized configuration values used across packages

// === File Processing ===

const (
	// MaxJSONLLineSize is the maximum size for a single JSONL line (10MB)
	// Default bufio.Scanner buffer is 64KB, but transcript lines with
	// thinking blocks and tool results can exceed 1MB
	MaxJSONLLineSize = 10 * 1024 * 1024

	// JSONLScanBufferSize is the initial buffer size for scanning
	// transcript files (1MB)
	JSONLScanBufferSize = 1024 * 1024

	// ScrubbedSuffix is appended to the source filename when no explicit
	// output path is given
	ScrubbedSuffix = ".scrubbed.jsonl"
)

// === Display ===

const (
	// DefaultRecentRuns is how many scrub runs the runs command lists
	DefaultRecentRuns = 20

	// SessionIDDisplayLength is how many characters of a session ID are
	// shown in listings
	SessionIDDisplayLength = 8
)
