package domain

// Filters constrains a retrieval query by flattened metadata.
// OrganizationName is matched exactly; MaxDues is an upper bound.
type Filters struct {
	// OrganizationName restricts results to one organisation (exact match).
	OrganizationName string

	// MaxDues restricts results to organisations with dues at or below
	// this amount. Nil means no constraint.
	MaxDues *float64
}

// IsEmpty reports whether no constraint is set.
func (f Filters) IsEmpty() bool {
	return f.OrganizationName == "" && f.MaxDues == nil
}

// Map renders the filters as the flat mapping echoed in a QueryResponse.
func (f Filters) Map() map[string]any {
	m := make(map[string]any)
	if f.OrganizationName != "" {
		m["organization_name"] = f.OrganizationName
	}
	if f.MaxDues != nil {
		m["dues"] = *f.MaxDues
	}
	return m
}

// RetrievedMatch is a single similarity search hit.
// Ephemeral, produced per query.
type RetrievedMatch struct {
	// ID is the deterministic chunk identifier.
	ID string

	// Score is the similarity score reported by the backend.
	Score float64

	// Text is the chunk content.
	Text string

	// Metadata is the flattened chunk metadata, minus the text itself.
	Metadata map[string]any
}

// Citation links a [Source N] marker in a generated answer back to the
// retrieved chunk it came from. Ordered identically to retrieval ranking.
type Citation struct {
	// SourceNumber is the 1-based position in the assembled context.
	SourceNumber int `json:"source_number"`

	// OrganizationName is the organisation the cited chunk belongs to.
	OrganizationName string `json:"organization_name"`

	// SourceFile names the originating document.
	SourceFile string `json:"source_file"`

	// RelevanceScore is the retrieval similarity score.
	RelevanceScore float64 `json:"relevance_score"`

	// TextSnippet is the first 150 characters of the chunk text, with an
	// ellipsis when truncated.
	TextSnippet string `json:"text_snippet"`

	// Metadata carries the full flattened metadata of the cited chunk.
	Metadata map[string]any `json:"metadata"`
}

// QueryResponse is the result of one full query cycle.
type QueryResponse struct {
	// Answer is the generated answer text, or a fixed no-results message.
	Answer string `json:"answer"`

	// Citations maps [Source N] markers to their chunks, ranking order.
	// Empty when retrieval produced no matches.
	Citations []Citation `json:"citations"`

	// RetrievedChunks is the raw retrieval result.
	RetrievedChunks []RetrievedMatch `json:"retrieved_chunks"`

	// FiltersApplied echoes the metadata filters used for retrieval.
	FiltersApplied map[string]any `json:"filters_applied"`
}
