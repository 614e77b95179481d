// Package domain defines the core business entities for astu-assist.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: A named binary blob submitted for ingestion
//   - Chunk: The unit of indexing and retrieval
//   - Answer: The outcome of a question-answering request
//   - ChatRecord: A persisted question/answer pair
//   - User: A local account, used only to attribute history and gate ingestion
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
