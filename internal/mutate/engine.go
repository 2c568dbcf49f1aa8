// Package mutate rewrites a document body around a resolved section. Every
// operation works on the byte offsets captured in the immutable parsed tree
// and returns a fresh body string; the tree itself is never modified.
package mutate

import (
	"strings"

	"ticketboard/internal/content"
	"ticketboard/internal/document"
)

// Replace substitutes the section's content span. When a rename was
// detected, the header line is swapped for the detected one and the span
// becomes the header-stripped body; otherwise the span becomes the supplied
// text verbatim and the header line is untouched.
func Replace(doc *document.Document, id int, text string, ren content.Rename) string {
	s := doc.Sections[id]
	if ren.Found {
		prefix := doc.Body[:s.HeaderStart]
		suffix := doc.Body[s.ContentEnd:]
		out := ren.HeaderLine + "\n"
		if ren.Body != "" {
			out += terminate(ren.Body, suffix)
		}
		return prefix + out + suffix
	}
	return splice(doc.Body, s.ContentStart, s.ContentEnd, text)
}

// Append inserts text at the end of the section's span, just before the
// next sibling-or-ancestor heading (or at end of body).
func Append(doc *document.Document, id int, text string) string {
	s := doc.Sections[id]
	return splice(doc.Body, s.ContentEnd, s.ContentEnd, text)
}

// Prepend inserts text immediately after the section's own header line.
func Prepend(doc *document.Document, id int, text string) string {
	s := doc.Sections[id]
	return splice(doc.Body, s.ContentStart, s.ContentStart, text)
}

// splice replaces body[start:end] with text, adding the newlines required
// to keep the surrounding header lines at line starts and nothing more.
func splice(body string, start, end int, text string) string {
	prefix := body[:start]
	suffix := body[end:]
	if text == "" {
		return prefix + suffix
	}
	if prefix != "" && !strings.HasSuffix(prefix, "\n") {
		text = "\n" + text
	}
	return prefix + terminate(text, suffix) + suffix
}

// terminate ensures text ends with a newline when more document follows.
func terminate(text, suffix string) string {
	if suffix != "" && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}
