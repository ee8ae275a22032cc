// Package domain contains the core types of the club discovery pipeline:
// documents and their extracted metadata on the ingestion side, and
// retrieval matches, citations, and query responses on the query side.
// It has no dependencies on adapters or external services.
package domain
