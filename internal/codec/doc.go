// Package codec implements the encode/decode engine.
//
// Encoding hashes plaintext+credential, maps each of the first 60 hex
// characters of the digest onto the five-glyph alphabet, groups the result in
// clusters of five, and records the plaintext in a registry.Store under the
// (symbolic text, credential) key. The formatted output is
//
//	坤曰：只因你太美，你我美积极，<grouped symbols>，<credential>
//
// Decoding parses that shape, checks the embedded credential against the one
// supplied by the caller, and looks the plaintext up in the same store. It is
// not an inverse of the digest: only inputs encoded against the same store
// can be decoded, and the store is never persisted.
//
// The engine never panics on bad input. Encode reports a missing digest
// algorithm as ErrAlgorithmUnavailable; Decode reports every other outcome
// through DecodeResult.Status.
package codec
