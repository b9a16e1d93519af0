package registry

import (
	"context"
	"strings"
)

// Key identifies one registry entry.
type Key string

// KeySeparator joins the symbolic text and the credential inside a Key.
const KeySeparator = ":"

// NewKey builds the lookup key for symbolic text and a credential. Any
// whitespace inside symbolic is removed first, so grouped and ungrouped
// renderings of the same text share a key.
func NewKey(symbolic, credential string) Key {
	return Key(StripWhitespace(symbolic) + KeySeparator + credential)
}

// StripWhitespace removes ASCII whitespace (space, \t, \n, \v, \f, \r).
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return -1
		}
		return r
	}, s)
}

// Store is the interface for recording and looking up encoded plaintexts.
//
// # Thread-Safety Requirements
//
// Implementations MUST serialize reads and writes. Concurrent encodes of the
// same input race on the same key; the only guarantee required is that the
// last completed write wins.
type Store interface {
	// Put records plaintext under key, replacing any previous value.
	Put(ctx context.Context, key Key, plaintext string) error

	// Get returns the plaintext recorded under key. The boolean is false
	// when no entry exists.
	Get(ctx context.Context, key Key) (string, bool, error)

	// Len returns the number of entries.
	Len(ctx context.Context) (int, error)

	// Keys returns every key in sorted order. It exists for diagnostics.
	Keys(ctx context.Context) ([]Key, error)
}
