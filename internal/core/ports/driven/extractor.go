package driven

import (
	"context"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

// Extractor turns a raw file into a plain-text string.
// Each extractor handles specific file extensions (e.g. .pdf, .txt).
type Extractor interface {
	// SupportedExtensions returns the lower-case extensions this extractor
	// handles, including the leading dot.
	SupportedExtensions() []string

	// Format returns the document format this extractor produces.
	Format() domain.Format

	// Extract reads the file at path and returns its text content.
	// An unreadable or corrupt file yields a wrapped domain.ErrExtraction.
	Extract(ctx context.Context, path string) (string, error)
}
