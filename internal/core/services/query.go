package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driving"
	"github.com/campus-labs/clubscout-cli/internal/logger"
	"github.com/campus-labs/clubscout-cli/internal/queryfilter"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the retrieval depth used when the caller leaves it unset.
const DefaultTopK = 5

// NoResultsAnswer is returned verbatim when retrieval comes back empty.
const NoResultsAnswer = "I couldn't find any relevant information in the club database to answer your question. Please try rephrasing or ask about a specific club."

// systemPrompt constrains generation to the retrieved context.
const systemPrompt = `You are a helpful assistant for students looking for student clubs and organizations.

Your role is to:
1. Answer questions about student clubs based ONLY on the provided context
2. Be specific and cite your sources using [Source X] markers
3. If the context doesn't contain relevant information, say so honestly
4. Provide practical information like meeting times, dues, and membership requirements when available
5. Be concise but informative
6. If asked about fit/recommendations, consider the student's stated preferences and constraints

Remember: Only use information from the provided context. Do not make up information.`

// GenerationDefaults tunes the answer generation step.
type GenerationDefaults struct {
	// TopK is the default retrieval depth.
	TopK int

	// Temperature controls generation randomness.
	Temperature float64

	// MaxTokens caps the generated answer length.
	MaxTokens int
}

// QueryService answers natural-language questions over the indexed corpus.
type QueryService struct {
	embedder driven.EmbeddingService
	fallback driven.EmbeddingService
	store    driven.VectorStore
	llm      driven.LLMService
	defaults GenerationDefaults
}

// NewQueryService creates a query service. The fallback embedder stands in
// when the primary one fails mid-query; nil disables the fallback.
func NewQueryService(
	embedder driven.EmbeddingService,
	fallback driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	defaults GenerationDefaults,
) *QueryService {
	if defaults.TopK <= 0 {
		defaults.TopK = DefaultTopK
	}
	return &QueryService{
		embedder: embedder,
		fallback: fallback,
		store:    store,
		llm:      llm,
		defaults: defaults,
	}
}

// Query runs the full cycle: filter extraction, retrieval, context
// assembly and generation. Degradations downstream of input validation
// are soft: a search failure answers as if nothing matched, a generation
// failure reports the error as the answer text.
func (s *QueryService) Query(ctx context.Context, question string, opts driving.QueryOptions) (domain.QueryResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.QueryResponse{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	logger.Section("Query Execution")
	logger.Debug("question: %q", question)

	filters := s.resolveFilters(question, opts)
	if !filters.IsEmpty() {
		logger.Debug("filters: %v", filters.Map())
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.defaults.TopK
	}

	matches := s.retrieve(ctx, question, topK, filters)
	logger.Debug("retrieved %d chunks", len(matches))

	response := domain.QueryResponse{
		Citations:       []domain.Citation{},
		RetrievedChunks: matches,
		FiltersApplied:  filters.Map(),
	}
	if len(matches) == 0 {
		response.Answer = NoResultsAnswer
		response.RetrievedChunks = []domain.RetrievedMatch{}
		return response, nil
	}

	contextBlock, citations := BuildContext(matches)
	response.Citations = citations

	logger.Debug("generating answer with %s", s.llm.ModelName())
	answer, err := s.llm.Generate(ctx, userPrompt(question, contextBlock), driven.GenerateOptions{
		SystemPrompt: systemPrompt,
		MaxTokens:    s.defaults.MaxTokens,
		Temperature:  s.defaults.Temperature,
	})
	if err != nil {
		logger.Warn("generation failed: %v", err)
		answer = fmt.Sprintf("Error: %v", err)
	}
	response.Answer = answer

	return response, nil
}

// resolveFilters merges heuristic filters from the question with explicit
// ones from the options. Explicit filters win per field.
func (s *QueryService) resolveFilters(question string, opts driving.QueryOptions) domain.Filters {
	var filters domain.Filters
	if opts.ExtractFilters {
		filters = queryfilter.Extract(question)
	}
	if opts.Filters.OrganizationName != "" {
		filters.OrganizationName = opts.Filters.OrganizationName
	}
	if opts.Filters.MaxDues != nil {
		filters.MaxDues = opts.Filters.MaxDues
	}
	return filters
}

// retrieve embeds the question and searches the store. Both steps degrade
// rather than fail: a broken embedder falls back to the deterministic
// embedder when one is configured, and a search error yields no matches.
func (s *QueryService) retrieve(ctx context.Context, question string, topK int, filters domain.Filters) []domain.RetrievedMatch {
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		logger.Warn("embedding query with %s failed: %v", s.embedder.ModelName(), err)
		if s.fallback == nil {
			return nil
		}
		vector, err = s.fallback.Embed(ctx, question)
		if err != nil {
			logger.Warn("fallback embedding failed: %v", err)
			return nil
		}
	}

	matches, err := s.store.Search(ctx, driven.SearchQuery{
		Text:    question,
		Vector:  vector,
		TopK:    topK,
		Filters: filters,
	})
	if err != nil {
		logger.Warn("search failed: %v", err)
		return nil
	}
	return matches
}

func userPrompt(question, contextBlock string) string {
	return fmt.Sprintf(`Context from club documents:
%s

Question: %s

Please answer the question based on the context above. Cite your sources using [Source X] format when referencing specific information. If you cannot answer based on the context, say so.`, contextBlock, question)
}
