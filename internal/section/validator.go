package section

import (
	"regexp"
	"strings"

	"ticketboard/internal/document"
)

// Validation is the outcome of checking a caller identifier before
// resolution. When Valid is false, Errors or Suggestions explain why.
type Validation struct {
	Valid       bool
	Normalized  string
	Errors      []string
	Suggestions []string
}

var markerSpacing = regexp.MustCompile(`^(#{1,6})\s*`)

// Validate normalizes a caller identifier and checks that something in the
// document can match it. Stray whitespace is stripped and marker spacing is
// fixed ("##Title" becomes "## Title"). When no exact match exists, close
// matches (case- and ordinal-insensitive) are offered as suggestions,
// formatted as full paths so each one resolves as-is. This runs before
// Resolve for mutating operations only.
func Validate(doc *document.Document, identifier string) Validation {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return Validation{Errors: []string{"identifier must not be empty"}}
	}

	components := strings.Split(trimmed, PathSeparator)
	for i, c := range components {
		c = strings.TrimSpace(c)
		if m := markerSpacing.FindStringSubmatch(c); m != nil && m[0] != "" {
			rest := strings.TrimSpace(c[len(m[0]):])
			if rest != "" {
				c = m[1] + " " + rest
			}
		}
		components[i] = c
	}
	normalized := strings.Join(components, PathSeparator)

	if len(resolveMatches(doc, normalized)) > 0 {
		return Validation{Valid: true, Normalized: normalized}
	}
	suggestions := closeMatches(doc, components[len(components)-1])
	if len(suggestions) == 0 {
		// No near miss: offer the top-level section names instead.
		suggestions = topLevelTitles(doc)
	}
	return Validation{
		Normalized:  normalized,
		Suggestions: suggestions,
	}
}

// closeMatches finds sections whose folded title equals or contains the
// folded identifier component (or vice versa).
func closeMatches(doc *document.Document, component string) []string {
	want := foldTitle(component)
	if want == "" {
		return nil
	}
	var out []string
	for _, s := range doc.Sections {
		have := foldTitle(s.Title)
		if have == want || strings.Contains(have, want) || strings.Contains(want, have) {
			out = append(out, FormatPath(doc, s.ID))
		}
	}
	return out
}

func foldTitle(s string) string {
	return strings.ToLower(ordinalPrefix.ReplaceAllString(normalizeComponent(s), ""))
}
