// Package tokenizer provides the approximate token counter shared across
// the ingestion and query pipelines. Counts only need to be consistent
// relative to each other, not compatible with any model's tokenizer.
package tokenizer

import "unicode"

// Count returns the approximate number of tokens in text.
//
// A run of letters or digits counts as one token per six characters
// (rounded up), and every other non-space character counts as one token.
// This tracks BPE-style tokenizers closely enough for chunk budgeting.
func Count(text string) int {
	tokens := 0
	run := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			run++
		case unicode.IsSpace(r):
			tokens += runTokens(run)
			run = 0
		default:
			tokens += runTokens(run) + 1
			run = 0
		}
	}
	return tokens + runTokens(run)
}

func runTokens(n int) int {
	if n == 0 {
		return 0
	}
	return (n + 5) / 6
}
