// Package registry defines the store that makes decoding possible: a mapping
// from a composite key (symbolic text with whitespace removed, ":", credential)
// to the plaintext that produced it.
//
// # Lifecycle
//
// A store is created empty by whichever component composes the encoder and
// decoder, lives for as long as that owner does, and is never persisted.
// Entries are written only by successful encodes and are never deleted. A
// second write under the same key overwrites the first.
//
// The registry is the decoder's only source of truth. Encoded text is not a
// reversible transform of the plaintext, so a well-formed input whose key
// was never written is simply not found.
//
// See internal/inmemorystore for the in-memory implementation.
package registry
