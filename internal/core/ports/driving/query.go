package driving

import (
	"context"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
)

// QueryService answers natural-language questions about the indexed corpus.
type QueryService interface {
	// Query runs the full retrieve-and-generate cycle for one question.
	Query(ctx context.Context, question string, opts QueryOptions) (domain.QueryResponse, error)
}

// QueryOptions configures one query.
type QueryOptions struct {
	// TopK is the number of chunks to retrieve. Zero uses the default.
	TopK int

	// Filters are explicit constraints. They take precedence over filters
	// extracted heuristically from the question text.
	Filters domain.Filters

	// ExtractFilters enables heuristic filter extraction from the question.
	ExtractFilters bool
}
