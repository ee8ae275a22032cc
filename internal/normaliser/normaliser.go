// Package normaliser cleans extracted document text before metadata
// extraction and chunking. Clean is a pure function; already-clean input
// passes through unchanged.
package normaliser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)

	// Recurring footer artifact: page number followed by "Updated <date>",
	// e.g. "3 Updated 12 January 2024".
	pageFooter = regexp.MustCompile(`\b\d+\s*Updated\s+\d+\s+\w+\s+\d{4}\b`)
)

// Clean collapses whitespace runs to single spaces, strips page-footer
// artifacts, normalises newline-plus-space sequences, and trims.
func Clean(text string) string {
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = pageFooter.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n ", "\n")
	return strings.TrimSpace(text)
}
