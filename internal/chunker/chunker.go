// Package chunker splits normalised document text into overlapping,
// token-bounded fragments. The splitter is separator-aware and recursive:
// it prefers to cut at paragraph breaks, then line breaks, then sentence
// ends, then spaces, and only as a last resort mid-word. Apart from the
// repeated overlap span, chunks tile the source text exactly.
package chunker

import (
	"strings"

	"github.com/campus-labs/clubscout-cli/internal/tokenizer"
)

// DefaultChunkSize is the default token budget per chunk.
const DefaultChunkSize = 300

// DefaultChunkOverlap is the default number of tokens repeated from the
// trailing end of the previous chunk.
const DefaultChunkOverlap = 50

// separators ordered coarsest first. The empty string means "cut anywhere".
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into token-bounded chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk budget in tokens.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for new content in every chunk.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// segment is an atomic piece of the source text. Separators stay attached
// to the preceding segment, so concatenating segments in order reproduces
// the source exactly.
type segment struct {
	text   string
	tokens int
}

// Split splits text into chunks of at most the configured token budget,
// each chunk after the first repeating the trailing overlap tokens of its
// predecessor. Empty text, or text shorter than the overlap, produces no
// chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if tokenizer.Count(text) < s.overlap {
		return nil
	}

	segs := s.segment(text, 0)
	if len(segs) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(segs) {
		// Walk back over preceding segments to build the overlap span.
		ovStart := start
		ovTokens := 0
		for ovStart > 0 && ovTokens+segs[ovStart-1].tokens <= s.overlap {
			ovTokens += segs[ovStart-1].tokens
			ovStart--
		}

		// Fill the rest of the budget with new segments, always taking at
		// least one so the walk terminates.
		end := start
		total := ovTokens
		for end < len(segs) {
			next := total + segs[end].tokens
			if end > start && next > s.chunkSize {
				break
			}
			total = next
			end++
		}

		// If the overlap plus the first new segment blew the budget,
		// shrink the overlap rather than the new content.
		for ovStart < start && total > s.chunkSize {
			total -= segs[ovStart].tokens
			ovStart++
		}

		var b strings.Builder
		for i := ovStart; i < end; i++ {
			b.WriteString(segs[i].text)
		}
		chunks = append(chunks, b.String())
		start = end
	}

	return chunks
}

// segment recursively splits text into segments that each fit the chunk
// budget, trying the coarsest separator first and falling back to finer
// ones only for oversized pieces.
func (s *Splitter) segment(text string, sepIdx int) []segment {
	if n := tokenizer.Count(text); n <= s.chunkSize {
		if text == "" {
			return nil
		}
		return []segment{{text: text, tokens: n}}
	}

	sep := separators[sepIdx]
	if sep == "" {
		return s.segmentByRunes(text)
	}

	pieces := splitAfter(text, sep)
	if len(pieces) == 1 {
		// Separator absent; try the next finer one.
		return s.segment(text, sepIdx+1)
	}

	var segs []segment
	for _, piece := range pieces {
		if n := tokenizer.Count(piece); n <= s.chunkSize {
			segs = append(segs, segment{text: piece, tokens: n})
			continue
		}
		segs = append(segs, s.segment(piece, sepIdx+1)...)
	}
	return segs
}

// segmentByRunes is the last-resort split: fixed rune windows. Every rune
// contributes at most one token, so windows of chunkSize runes always fit.
func (s *Splitter) segmentByRunes(text string) []segment {
	runes := []rune(text)
	var segs []segment
	for start := 0; start < len(runes); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		piece := string(runes[start:end])
		segs = append(segs, segment{text: piece, tokens: tokenizer.Count(piece)})
	}
	return segs
}

// splitAfter splits text on sep keeping the separator attached to the
// preceding piece, and drops the trailing empty piece when text ends with
// the separator.
func splitAfter(text, sep string) []string {
	pieces := strings.SplitAfter(text, sep)
	if n := len(pieces); n > 0 && pieces[n-1] == "" {
		pieces = pieces[:n-1]
	}
	return pieces
}
