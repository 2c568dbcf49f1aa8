package content

import (
	"fmt"
	"strings"
)

// DefaultMaxLength bounds caller-supplied content when no limit is
// configured.
const DefaultMaxLength = 500000

// TooLargeError is returned when supplied content exceeds the configured
// limit. The caller must shrink the payload; there is no partial accept.
type TooLargeError struct {
	Length int
	Limit  int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("content length %d exceeds limit %d", e.Length, e.Limit)
}

// Result is the sanitized form of caller-supplied content. Modified is set
// when normalization changed any byte; Warnings are non-fatal findings that
// ride along with a successful operation.
type Result struct {
	Content  string
	Modified bool
	Warnings []string
}

// Process sanitizes caller-supplied content before it is spliced into a
// document: enforces the length limit, normalizes line endings to LF, and
// trims trailing spaces and tabs. An odd number of code-fence markers is
// flagged as a warning, never an error, since the caller may be inserting a
// fragment that closes a fence opened elsewhere in the section.
func Process(raw string, maxLength int) (Result, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if len(raw) > maxLength {
		return Result{}, &TooLargeError{Length: len(raw), Limit: maxLength}
	}

	out := strings.ReplaceAll(raw, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = strings.TrimRight(out, " \t")

	res := Result{Content: out, Modified: out != raw}

	fences := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fences++
		}
	}
	if fences%2 == 1 {
		res.Warnings = append(res.Warnings, "unbalanced code fence markers in content")
	}
	return res, nil
}
