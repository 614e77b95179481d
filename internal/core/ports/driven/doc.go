// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// The core services depend on these interfaces, never on concrete adapters.
// Adapters implement them for specific backends: an OpenAI-compatible
// embedding endpoint, the Gemini generation API, a chromem-go vector index,
// SQLite history and user stores.
package driven
