// Package metadata derives structured fields from normalised document text
// using ordered, rule-based pattern matching. Every rule is independent and
// best-effort: a miss yields the field's zero value, never an error, and
// extraction is idempotent.
package metadata

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

// membershipExcerptLimit caps the captured membership span.
const membershipExcerptLimit = 200

var (
	organizationName = regexp.MustCompile(
		`(?i)(?:name of this organization shall be|organization:)\s+(?:the\s+)?([^.]+(?:Club|Organization|Society)[^.]*)`)

	dues = regexp.MustCompile(`(?i)(?:dues|fee|cost)[^\d]*\$?(\d+(?:\.\d{2})?)`)

	// Meeting cadence patterns, coarsest phrasing first. Ordering is
	// significant: the first pattern that matches wins.
	meetingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)meet(?:ing)?s?\s+(?:every\s+)?(\w+(?:\s+\w+)?)`),
		regexp.MustCompile(`(?i)bi-?weekly|monthly|weekly|daily`),
	}

	lastUpdated = regexp.MustCompile(`(?i)Updated\s+(\d+\s+\w+\s+\d{4})`)

	membershipSection = regexp.MustCompile(`(?is)(membership[^:]*:.*?)(?:Article|Section|$)`)
)

// Extract derives document metadata from normalised text. fileName is the
// base name of the source file and doubles as the organisation-name
// fallback, so OrganizationName is always populated.
func Extract(text, fileName string) domain.DocumentMetadata {
	meta := domain.DocumentMetadata{
		SourceFile: fileName,
	}

	meta.OrganizationName = extractOrganizationName(text)
	if meta.OrganizationName == "" {
		meta.OrganizationName = nameFromFileName(fileName)
	}
	meta.Dues = extractDues(text)
	meta.MeetingFrequency = extractMeetingFrequency(text)
	meta.LastUpdated = extractLastUpdated(text)
	meta.MembershipRequirements = extractMembershipRequirements(text)

	return meta
}

// extractOrganizationName looks for phrasing introducing an organisation's
// formal name. Returns "" when no match is found.
func extractOrganizationName(text string) string {
	m := organizationName.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractDues parses the first currency amount following a dues/fee/cost
// keyword. Returns nil when no amount is found.
func extractDues(text string) *float64 {
	m := dues.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil || amount < 0 {
		return nil
	}
	return &amount
}

// extractMeetingFrequency returns the first cadence phrase that matches,
// honouring pattern precedence.
func extractMeetingFrequency(text string) string {
	for _, pattern := range meetingPatterns {
		if m := pattern.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// extractLastUpdated captures the text following an "Updated" keyword
// as-is; no date parsing or validation.
func extractLastUpdated(text string) string {
	m := lastUpdated.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractMembershipRequirements captures the span from a "membership...:"
// opener up to the next section header or document end, truncated to the
// first 200 characters.
func extractMembershipRequirements(text string) []string {
	if !strings.Contains(strings.ToLower(text), "membership") {
		return nil
	}
	m := membershipSection.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	excerpt := m[1]
	if len(excerpt) > membershipExcerptLimit {
		excerpt = excerpt[:membershipExcerptLimit]
	}
	excerpt = strings.TrimSpace(excerpt)
	if excerpt == "" {
		return nil
	}
	return []string{excerpt}
}

// nameFromFileName derives an organisation name from a file name: strip the
// extension, replace underscores with spaces, title-case each word.
func nameFromFileName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name = strings.ReplaceAll(name, "_", " ")
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
