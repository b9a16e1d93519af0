// Package digest provides the named hash algorithms the encoder can derive
// symbol indices from.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// Default is the algorithm used when none is configured.
const Default = "sha256"

// ErrUnknownAlgorithm is returned when a requested algorithm is not registered.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

type constructor func() (hash.Hash, error)

var algorithms = map[string]constructor{
	"sha256": func() (hash.Hash, error) { return sha256.New(), nil },
	"sha3-256": func() (hash.Hash, error) { return sha3.New256(), nil },
	// Unkeyed, so the error return is always nil.
	"blake2b-256": func() (hash.Hash, error) { return blake2b.New256(nil) },
	"blake2s-256": func() (hash.Hash, error) { return blake2s.New256(nil) },
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Available reports whether name is a registered algorithm.
func Available(name string) bool {
	_, ok := algorithms[name]
	return ok
}

// Sum returns the digest of in computed with the named algorithm.
func Sum(name string, in []byte) ([]byte, error) {
	newHash, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	h, err := newHash()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise %s: %w", name, err)
	}
	if _, err := h.Write(in); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// Hex returns the lowercase hexadecimal rendering of Sum.
func Hex(name string, in []byte) (string, error) {
	sum, err := Sum(name, in)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}
