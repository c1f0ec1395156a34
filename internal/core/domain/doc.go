// Package domain defines the core business entities for Quarry.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source document loaded from the corpus
//   - Chunk: A retrieval unit cut from a document
//   - Role: A caller-asserted privilege label
//   - AccessPolicy: The static role/document/redaction rules
//   - IndexSnapshot: The persisted form of a fitted index
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
