// Package extractors provides file-format text extraction for the
// ingestion pipeline. Each format lives in its own subpackage implementing
// the driven.Extractor port; the registry selects one by file extension.
package extractors
