package section

import (
	"fmt"
	"regexp"
	"strings"

	"ticketboard/internal/document"
)

// PathSeparator joins the components of a hierarchical section path. The
// same separator is accepted by Resolve and emitted by FormatPath, so any
// path printed in an error message resolves when fed back in.
const PathSeparator = " / "

// NotFoundError is returned when an identifier matches no section.
// Suggestions always carries alternatives the caller can retry with.
type NotFoundError struct {
	Identifier  string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("section not found: %q", e.Identifier)
}

// AmbiguousError is returned when an identifier matches more than one
// section. Candidates holds the full hierarchical path of every match,
// formatted by FormatPath; each candidate independently resolves to its
// section.
type AmbiguousError struct {
	Identifier string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous section %q: matches %s", e.Identifier, strings.Join(e.Candidates, ", "))
}

var (
	markerPrefix  = regexp.MustCompile(`^#{1,6}\s+`)
	ordinalPrefix = regexp.MustCompile(`^\d+[.)]\s+`)
)

// FormatPath renders the hierarchical path of a section: the header text of
// every ancestor down to the section itself, joined by PathSeparator. This
// is the single canonical path formatter; the resolver and every error
// message use it.
func FormatPath(doc *document.Document, id int) string {
	var parts []string
	for cur := id; cur >= 0; cur = doc.Sections[cur].Parent {
		parts = append([]string{doc.Sections[cur].HeaderText}, parts...)
	}
	return strings.Join(parts, PathSeparator)
}

// normalizeComponent strips surrounding whitespace and an optional heading
// marker prefix, so "## 1. Description" compares as "1. Description".
func normalizeComponent(s string) string {
	s = strings.TrimSpace(s)
	s = markerPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// titleMatches compares a section title against a normalized identifier
// component. Matching is case-sensitive; a numeric ordinal prefix on either
// side is ignored, so "Description" matches "1. Description".
func titleMatches(title, component string) bool {
	if title == component {
		return true
	}
	return ordinalPrefix.ReplaceAllString(title, "") == ordinalPrefix.ReplaceAllString(component, "")
}

// Resolve maps an identifier to exactly one section of the document.
// Identifiers containing PathSeparator are matched end-to-end against the
// ancestry chain; anything else is matched as a simple section name. Zero
// matches yield a NotFoundError suggesting the top-level section names;
// multiple matches yield an AmbiguousError listing every candidate path.
func Resolve(doc *document.Document, identifier string) (int, error) {
	matches := resolveMatches(doc, identifier)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return -1, &NotFoundError{Identifier: identifier, Suggestions: topLevelTitles(doc)}
	default:
		candidates := make([]string, len(matches))
		for i, id := range matches {
			candidates[i] = FormatPath(doc, id)
		}
		return -1, &AmbiguousError{Identifier: identifier, Candidates: candidates}
	}
}

func resolveMatches(doc *document.Document, identifier string) []int {
	var matches []int
	if strings.Contains(identifier, PathSeparator) {
		components := strings.Split(identifier, PathSeparator)
		for i := range components {
			components[i] = normalizeComponent(components[i])
		}
		for _, s := range doc.Sections {
			if pathMatches(s.Path, components) {
				matches = append(matches, s.ID)
			}
		}
		return matches
	}

	want := normalizeComponent(identifier)
	for _, s := range doc.Sections {
		if titleMatches(s.Title, want) {
			matches = append(matches, s.ID)
		}
	}
	return matches
}

func pathMatches(path, components []string) bool {
	if len(path) != len(components) {
		return false
	}
	for i := range components {
		if !titleMatches(path[i], components[i]) {
			return false
		}
	}
	return true
}

func topLevelTitles(doc *document.Document) []string {
	var titles []string
	for _, s := range doc.Sections {
		if s.Parent < 0 {
			titles = append(titles, s.Title)
		}
	}
	return titles
}
