package extractors

import (
	"path/filepath"
	"strings"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
)

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. Later
// extractors win on extension conflicts.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// ForPath returns the extractor for the file's extension, or
// domain.ErrUnsupportedFormat when none is registered.
func (r *Registry) ForPath(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	return e, nil
}

// Supported reports whether the file's extension has an extractor.
func (r *Registry) Supported(path string) bool {
	_, err := r.ForPath(path)
	return err == nil
}
