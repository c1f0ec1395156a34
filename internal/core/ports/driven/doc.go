// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CorpusSource: Supplies documents to index
//   - SnapshotStore: Index persistence
//
// # Optional Interfaces
//
//   - AnswerGenerator: Produces answers from retrieved context. Without
//     it the query entry point fails with ErrGeneratorUnavailable, while
//     raw search keeps working.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
