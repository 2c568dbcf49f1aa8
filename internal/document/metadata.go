package document

import (
	"strings"
	"time"
)

// timestampKey is the metadata field updated after every successful mutation.
const timestampKey = "lastModified"

// PatchTimestamp replaces the value of the lastModified field with the given
// time in RFC 3339 UTC. Only that single line changes; every other metadata
// byte is preserved verbatim. If the field is absent it is appended as the
// last line of the block.
func PatchTimestamp(frontmatter string, now time.Time) string {
	stamp := timestampKey + ": " + now.UTC().Format(time.RFC3339)

	lines := strings.Split(frontmatter, "\n")
	for i, line := range lines {
		key, _, ok := strings.Cut(line, ":")
		if ok && strings.TrimSpace(key) == timestampKey {
			lines[i] = stamp
			return strings.Join(lines, "\n")
		}
	}

	if frontmatter != "" && !strings.HasSuffix(frontmatter, "\n") {
		frontmatter += "\n"
	}
	return frontmatter + stamp + "\n"
}
