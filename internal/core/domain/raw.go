package domain

// RawDocument represents a named binary blob submitted for ingestion.
// It exists only until its text has been extracted and chunked; the raw
// bytes are not retained afterwards.
type RawDocument struct {
	// Name is the document's display name (typically the file name).
	// It becomes the Source attribute of every chunk cut from it.
	Name string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
