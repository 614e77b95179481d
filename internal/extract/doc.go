// Package extract provides text extractors for the ingestion pipeline.
//
// Each extractor handles a set of MIME types; the Registry picks one for an
// incoming document or rejects the format. PDF is the primary format, with a
// plain-text fallback for already-extracted content.
package extract
