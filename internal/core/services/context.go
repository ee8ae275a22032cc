package services

import (
	"fmt"
	"strings"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

// snippetLimit bounds citation text snippets.
const snippetLimit = 150

// BuildContext renders retrieved chunks into the prompt context block and
// the parallel citation list. Entry n in the context carries a
// "[Source n]" marker that maps 1:1 onto citation n, in ranking order.
func BuildContext(matches []domain.RetrievedMatch) (string, []domain.Citation) {
	if len(matches) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(matches))
	citations := make([]domain.Citation, 0, len(matches))

	for idx, match := range matches {
		orgName := metadataString(match.Metadata, "organization_name", "Unknown Organization")
		sourceFile := metadataString(match.Metadata, "source_file", "Unknown Source")

		parts = append(parts, fmt.Sprintf("[Source %d] %s:\n%s\n", idx+1, orgName, match.Text))

		citations = append(citations, domain.Citation{
			SourceNumber:     idx + 1,
			OrganizationName: orgName,
			SourceFile:       sourceFile,
			RelevanceScore:   match.Score,
			TextSnippet:      snippet(match.Text),
			Metadata:         match.Metadata,
		})
	}

	return strings.Join(parts, "\n"), citations
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > snippetLimit {
		return string(runes[:snippetLimit]) + "..."
	}
	return text
}

func metadataString(metadata map[string]any, key, fallback string) string {
	if v, ok := metadata[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
