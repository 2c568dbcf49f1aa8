package document

import (
	"errors"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence delimits the metadata block: the file starts with a fence line, and
// the block ends at the next fence line.
const Fence = "---"

// ErrMalformedDocument is returned when the metadata fence pair is missing
// at the start of the file.
var ErrMalformedDocument = errors.New("malformed document: metadata fence not found")

// atxHeading is the heading grammar recognized by the engine: 1-6 markers,
// whitespace, then text, end of line. The same grammar is used by the
// rename detector so both agree on what counts as a heading.
var atxHeading = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// MatchHeading tests a single line against the ATX heading grammar and
// returns the literal marker count and the heading text.
func MatchHeading(line string) (level int, title string, ok bool) {
	m := atxHeading.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// md is the shared goldmark instance used for heading detection. Parsing via
// the AST keeps heading-looking lines inside fenced code blocks from being
// treated as structure.
var md = goldmark.New()

// Split separates the raw file text into the metadata block and the body.
// The metadata block is returned verbatim (fence lines excluded) so callers
// can patch single keys without reformatting anything else.
func Split(raw string) (frontmatter, body string, err error) {
	if !strings.HasPrefix(raw, Fence+"\n") {
		return "", "", ErrMalformedDocument
	}
	rest := raw[len(Fence)+1:]
	if strings.HasPrefix(rest, Fence+"\n") {
		return "", rest[len(Fence)+1:], nil
	}
	if idx := strings.Index(rest, "\n"+Fence+"\n"); idx >= 0 {
		return rest[:idx+1], rest[idx+1+len(Fence)+1:], nil
	}
	// Closing fence as the final line of the file, no trailing newline.
	if strings.HasSuffix(rest, "\n"+Fence) {
		return rest[:len(rest)-len(Fence)], "", nil
	}
	return "", "", ErrMalformedDocument
}

// Assemble reconstructs the on-disk form: fence + metadata + fence + body.
func Assemble(frontmatter, body string) string {
	if frontmatter != "" && !strings.HasSuffix(frontmatter, "\n") {
		frontmatter += "\n"
	}
	return Fence + "\n" + frontmatter + Fence + "\n" + body
}

// Parse splits raw text into metadata and body and builds the section arena
// from the body's ATX headings. It is a pure function of its input.
func Parse(raw string) (*Document, error) {
	frontmatter, body, err := Split(raw)
	if err != nil {
		return nil, err
	}
	doc := &Document{Frontmatter: frontmatter, Body: body}
	doc.Sections = buildArena(body)
	return doc, nil
}

// headingLine is an ATX heading located in the body, by byte offset.
type headingLine struct {
	level     int
	title     string
	lineStart int
	lineEnd   int // end of the line text, before its newline
}

// scanHeadings walks the goldmark AST and returns every ATX heading in
// document order with the byte offsets of its full header line.
func scanHeadings(body string) []headingLine {
	src := []byte(body)
	root := md.Parser().Parse(text.NewReader(src))

	var found []headingLine
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		seg := lines.At(0)

		lineStart := strings.LastIndexByte(body[:seg.Start], '\n') + 1
		lineEnd := seg.Stop
		if nl := strings.IndexByte(body[seg.Stop:], '\n'); nl >= 0 {
			lineEnd = seg.Stop + nl
		} else {
			lineEnd = len(body)
		}

		// Goldmark also recognizes setext headings and headings nested in
		// other blocks; only lines matching the ATX grammar at line start
		// are structure here.
		m := atxHeading.FindStringSubmatch(body[lineStart:lineEnd])
		if m == nil {
			return ast.WalkContinue, nil
		}
		found = append(found, headingLine{
			level:     len(m[1]),
			title:     m[2],
			lineStart: lineStart,
			lineEnd:   lineEnd,
		})
		return ast.WalkContinue, nil
	})
	return found
}

// buildArena turns the body's headings into the section arena. Parent/child
// relations come from a level stack: a new heading pops everything at its
// level or deeper and attaches to whatever remains on top.
func buildArena(body string) []Section {
	headings := scanHeadings(body)
	sections := make([]Section, 0, len(headings))

	var stack []int
	for _, h := range headings {
		for len(stack) > 0 && sections[stack[len(stack)-1]].Level >= h.level {
			stack = stack[:len(stack)-1]
		}

		parent := -1
		var path []string
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
			path = append(path, sections[parent].Path...)
		}
		path = append(path, h.title)

		id := len(sections)
		contentStart := h.lineEnd
		if contentStart < len(body) {
			contentStart++ // step past the header line's newline
		}
		sections = append(sections, Section{
			ID:           id,
			Level:        h.level,
			HeaderText:   body[h.lineStart:h.lineEnd],
			Title:        h.title,
			Parent:       parent,
			Path:         path,
			HeaderStart:  h.lineStart,
			HeaderEnd:    h.lineEnd,
			ContentStart: contentStart,
			ContentEnd:   len(body),
		})
		if parent >= 0 {
			sections[parent].Children = append(sections[parent].Children, id)
		}
		stack = append(stack, id)
	}

	// Second pass: close each span at the next heading of equal or lower
	// level, so a section's content covers its whole subtree.
	for i := range sections {
		for j := i + 1; j < len(sections); j++ {
			if sections[j].Level <= sections[i].Level {
				sections[i].ContentEnd = sections[j].HeaderStart
				break
			}
		}
	}
	return sections
}
