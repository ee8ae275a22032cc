// Package queryfilter heuristically derives metadata filters from a
// free-text question. Extraction is advisory and low-precision: false
// negatives are expected, and a miss never blocks a query, only widens it.
package queryfilter

import (
	"regexp"
	"strconv"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

// duesPatterns are evaluated in order; the first match wins.
var duesPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:under|less than|below|max)\s*\$?(\d+)`),
	regexp.MustCompile(`(?i)\$(\d+)\s*(?:or less|max|maximum)`),
}

// Extract derives filters from a question. A question with no recognised
// numeric cue yields empty filters.
func Extract(question string) domain.Filters {
	var filters domain.Filters

	for _, pattern := range duesPatterns {
		m := pattern.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		filters.MaxDues = &amount
		break
	}

	return filters
}
