package content

import (
	"strings"

	"ticketboard/internal/document"
)

// Rename is the result of inspecting supplied content for an embedded
// intent to relabel the target section: content whose first non-blank line
// is a heading at exactly the target's level.
type Rename struct {
	Found      bool
	HeaderLine string // normalized header line, e.g. "## New Name"
	Title      string
	Body       string // content after the header line, trimmed; the full content when not Found
}

// DetectRename checks whether content starts (after any blank lines) with a
// heading at exactly the given level, using the same grammar the document
// parser recognizes. When found, Body is everything after that line.
func DetectRename(level int, content string) Rename {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		hlevel, title, ok := document.MatchHeading(line)
		if !ok || hlevel != level {
			break
		}
		return Rename{
			Found:      true,
			HeaderLine: strings.Repeat("#", hlevel) + " " + title,
			Title:      title,
			Body:       strings.TrimSpace(strings.Join(lines[i+1:], "\n")),
		}
	}
	return Rename{Body: content}
}
