package domain

// Format identifies the source file format of a document.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
)

// Document represents one source file during ingestion.
// It is created when a file is picked up and discarded after chunking;
// only chunks are persisted.
type Document struct {
	// Path is the filesystem location of the source file.
	Path string

	// Format is the detected file format.
	Format Format

	// RawText is the extracted text before cleaning.
	RawText string

	// CleanText is the normalised text that chunking operates on.
	CleanText string

	// Metadata holds the structured fields derived from CleanText.
	Metadata DocumentMetadata
}

// DocumentMetadata holds structured fields derived from a document's text.
// Every field except OrganizationName is best-effort and may be absent.
type DocumentMetadata struct {
	// OrganizationName is always populated: rule-based extraction with a
	// title-cased filename fallback.
	OrganizationName string

	// Dues is the membership cost in dollars, nil when no amount was found.
	Dues *float64

	// MeetingFrequency is free text such as "meets every Tuesday" or "weekly".
	MeetingFrequency string

	// MembershipRequirements holds text excerpts describing eligibility.
	MembershipRequirements []string

	// SourceFile is the base name of the file the document came from.
	SourceFile string

	// LastUpdated is the raw text following an "Updated" marker, unparsed.
	LastUpdated string
}

// Chunk is a token-bounded fragment of a document's clean text.
// Chunks are the unit of indexing and retrieval.
type Chunk struct {
	// Text is the fragment content. Adjacent chunks of one document share
	// an overlapping span of trailing/leading tokens.
	Text string

	// Index is the 0-based position within the owning document.
	Index int

	// TotalChunks is the number of chunks produced from the owning document.
	TotalChunks int

	// Metadata is a copy of the owning document's metadata.
	Metadata DocumentMetadata
}

// Flatten converts chunk metadata into the single-level mapping the vector
// store requires. Optional fields that are absent are omitted entirely,
// never stored as null placeholders.
func (c Chunk) Flatten() map[string]any {
	flat := map[string]any{
		"organization_name": c.Metadata.OrganizationName,
		"source_file":       c.Metadata.SourceFile,
		"chunk_index":       c.Index,
		"total_chunks":      c.TotalChunks,
	}
	if c.Metadata.Dues != nil {
		flat["dues"] = *c.Metadata.Dues
	}
	if c.Metadata.MeetingFrequency != "" {
		flat["meeting_frequency"] = c.Metadata.MeetingFrequency
	}
	if c.Metadata.LastUpdated != "" {
		flat["last_updated"] = c.Metadata.LastUpdated
	}
	if len(c.Metadata.MembershipRequirements) > 0 {
		flat["membership_requirements"] = c.Metadata.MembershipRequirements[0]
	}
	return flat
}
