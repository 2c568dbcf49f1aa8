package document

import "strings"

// Field is a single key/value line from the metadata block, in document order.
type Field struct {
	Key   string
	Value string
}

// Section is one node of the section arena. Parent and Children are arena
// indices rather than pointers, so the tree is acyclic by construction and
// trivially copyable in tests.
type Section struct {
	ID         int
	Level      int      // literal count of '#' markers (1-6)
	HeaderText string   // full header line, e.g. "## 1. Description"
	Title      string   // marker-stripped heading text
	Parent     int      // arena index of the parent, -1 for top-level sections
	Children   []int    // arena indices in document order
	Path       []string // titles from root to this section

	// Byte offsets into Document.Body. The content span runs from just past
	// the header line's newline to the start of the next heading whose level
	// is <= this section's level, so it covers the whole subtree.
	HeaderStart  int
	HeaderEnd    int // end of the header line text, before its newline
	ContentStart int
	ContentEnd   int
}

// Document is a parsed ticket file: the raw metadata block, the body, and the
// section arena built from the body's ATX headings. A Document is parsed
// fresh per request and never cached.
type Document struct {
	Frontmatter string // raw text between the two fence lines, verbatim
	Body        string // everything after the closing fence line
	Sections    []Section
}

// Content returns the raw content span owned by the section, including the
// text of all descendant headings.
func (d *Document) Content(id int) string {
	s := d.Sections[id]
	return d.Body[s.ContentStart:s.ContentEnd]
}

// Metadata returns the metadata block as an ordered list of key/value fields.
// Lines without a colon are skipped.
func (d *Document) Metadata() []Field {
	var fields []Field
	for _, line := range strings.Split(d.Frontmatter, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) == "" {
			continue
		}
		fields = append(fields, Field{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
	}
	return fields
}
