package driven

import "context"

// LLMService provides grounded text generation for answering queries.
//
// Implementations may include:
//   - Groq (OpenAI-compatible chat completions)
//   - Anthropic (Claude)
type LLMService interface {
	// Generate produces a completion for the given user prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// SystemPrompt constrains the model, e.g. to answer only from provided
	// context with [Source N] citations.
	SystemPrompt string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
