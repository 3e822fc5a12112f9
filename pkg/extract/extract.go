// Package extract runs the transcript scrub pipeline: it streams a JSONL
// transcript, sanitizes each entry through the secrets engine, and writes
// the redacted copy.
package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/secrets"
)

// redactionMarker matches [REDACTED:<rule-id>] markers in scrubbed output
var redactionMarker = regexp.MustCompile(`\[REDACTED:([a-z0-9-]+)\]`)

// Result summarizes one scrubbed file
type Result struct {
	Lines           int
	OriginalBytes   int64
	ScrubbedBytes   int64
	TotalRedactions int
	ByRule          map[string]int // rule id -> redaction count
}

// ScrubFile reads the JSONL transcript at srcPath, sanitizes every entry,
// and writes the scrubbed copy to dstPath.
func ScrubFile(engine *secrets.Engine, srcPath, dstPath string) (*Result, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer dst.Close()

	result, err := Scrub(engine, src, dst)
	if err != nil {
		return nil, fmt.Errorf("failed to scrub %s: %w", srcPath, err)
	}

	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush output file: %w", err)
	}

	return result, nil
}

// Scrub streams JSONL lines from r to w, sanitizing each one.
func Scrub(engine *secrets.Engine, r io.Reader, w io.Writer) (*Result, error) {
	result := &Result{ByRule: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, config.JSONLScanBufferSize), config.MaxJSONLLineSize)

	out := bufio.NewWriter(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		result.Lines++
		result.OriginalBytes += int64(len(line)) + 1

		scrubbed, err := scrubLine(engine, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", result.Lines, err)
		}

		countRedactions(line, scrubbed, result)
		result.ScrubbedBytes += int64(len(scrubbed)) + 1

		if _, err := out.Write(scrubbed); err != nil {
			return nil, fmt.Errorf("failed to write scrubbed line: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return nil, fmt.Errorf("failed to write newline: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	if err := out.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	return result, nil
}

// scrubLine sanitizes one JSONL line. Each line is one transcript entry;
// lines that are not valid JSON are sanitized as raw text.
func scrubLine(engine *secrets.Engine, line []byte) ([]byte, error) {
	if len(line) == 0 {
		return line, nil
	}

	var entry any
	if err := json.Unmarshal(line, &entry); err != nil {
		return []byte(engine.SanitizeString(string(line))), nil
	}

	sanitized := engine.SanitizeValue(entry)

	// Encode with HTML escaping off so markers and transcript text
	// survive byte-for-byte.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(sanitized); err != nil {
		return nil, fmt.Errorf("failed to encode sanitized entry: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// countRedactions tallies markers added to the scrubbed line. Markers
// already present in the source (a previously scrubbed transcript) are
// not counted again.
func countRedactions(original, scrubbed []byte, result *Result) {
	before := make(map[string]int)
	for _, m := range redactionMarker.FindAllSubmatch(original, -1) {
		before[string(m[1])]++
	}

	for _, m := range redactionMarker.FindAllSubmatch(scrubbed, -1) {
		rule := string(m[1])
		if before[rule] > 0 {
			before[rule]--
			continue
		}
		result.ByRule[rule]++
		result.TotalRedactions++
	}
}

// OutputPath derives the destination for a scrubbed transcript when the
// caller gave none: the source name with a .scrubbed.jsonl suffix.
func OutputPath(srcPath string) string {
	base := strings.TrimSuffix(srcPath, ".jsonl")
	return base + config.ScrubbedSuffix
}
