// Package core provides the foundational domain types and interfaces shared by
// the CourtScout routing pipeline. It defines the core abstractions for:
//
//   - Encoder (text to embedding vector, the similarity backbone of routing)
//   - RouteMatch (the transient result of classifying a request)
//   - The error taxonomy separating caller mistakes, configuration defects and
//     external collaborator failures
//
// The package intentionally keeps implementation concerns (embedding providers,
// capability implementations, completion engines) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
