package codec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/vk/kunyue/internal/digest"
	"github.com/vk/kunyue/internal/registry"
)

// Engine encodes plaintext into the symbolic format and decodes it back by
// looking it up in a registry.Store. An Engine is safe for concurrent use as
// long as its store is.
type Engine struct {
	store     registry.Store
	algorithm string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDigest selects the digest algorithm by name. An unknown name is not
// rejected here; Encode reports it as ErrAlgorithmUnavailable.
func WithDigest(name string) Option {
	return func(e *Engine) { e.algorithm = name }
}

// New creates an Engine backed by store.
func New(store registry.Store, opts ...Option) *Engine {
	e := &Engine{store: store, algorithm: digest.Default}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Algorithm returns the configured digest algorithm name.
func (e *Engine) Algorithm() string {
	return e.algorithm
}

// Encode converts plaintext into the symbolic format and records it so it can
// be decoded later with the same credential. Exactly one registry write
// happens on success and none on failure.
func (e *Engine) Encode(ctx context.Context, plaintext, credential string) (EncodeResult, error) {
	logger := ctxlog.FromContext(ctx).With("algorithm", e.algorithm)

	sum, err := digest.Hex(e.algorithm, []byte(plaintext+credential))
	if err != nil {
		logger.Error("Encoding failed.", "error", err)
		return EncodeResult{}, fmt.Errorf("%w: %w", ErrAlgorithmUnavailable, err)
	}

	grouped := group(symbolize(sum))
	key := registry.NewKey(grouped, credential)
	if err := e.store.Put(ctx, key, plaintext); err != nil {
		return EncodeResult{}, fmt.Errorf("failed to record registry entry: %w", err)
	}
	logger.Debug("Encoded text.", "key", string(key), "plaintext", plaintext)

	return EncodeResult{
		Symbolic:  grouped,
		Formatted: format(grouped, credential),
	}, nil
}

// EncodeText is the string boundary over Encode: it returns the formatted
// output, or a description of the failure.
func (e *Engine) EncodeText(ctx context.Context, plaintext, credential string) string {
	res, err := e.Encode(ctx, plaintext, credential)
	if err != nil {
		return FailureText(err)
	}
	return res.Formatted
}

// FailureText renders an Encode error the way EncodeText reports it.
func FailureText(err error) string {
	return msgEncodeFailed + err.Error()
}

// Decode parses formatted, checks its credential against credential and
// returns the recorded plaintext. It never returns an error; every outcome is
// described by the result's Status.
func (e *Engine) Decode(ctx context.Context, formatted, credential string) DecodeResult {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Attempting decode.", "input", formatted)

	symbolic, embedded, ok := parse(formatted)
	if !ok {
		logger.Debug("Input does not match the expected format.")
		return malformed()
	}
	logger.Debug("Parsed input.", "symbolic", symbolic, "credential", embedded)

	if embedded != credential {
		return credentialMismatch()
	}

	key := registry.NewKey(symbolic, credential)
	plaintext, found, err := e.store.Get(ctx, key)
	if err != nil {
		logger.Error("Registry lookup failed.", "key", string(key), "error", err)
		return notFound()
	}
	if !found {
		e.logMiss(ctx, logger, key)
		return notFound()
	}

	logger.Debug("Found original text.", "key", string(key))
	return DecodeResult{Status: StatusOK, Text: plaintext}
}

// DecodeText is the string boundary over Decode.
func (e *Engine) DecodeText(ctx context.Context, formatted, credential string) string {
	return e.Decode(ctx, formatted, credential).Text
}

// logMiss dumps the known keys when debug logging is enabled.
func (e *Engine) logMiss(ctx context.Context, logger *slog.Logger, key registry.Key) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	keys, err := e.store.Keys(ctx)
	if err != nil {
		return
	}
	known := make([]string, len(keys))
	for i, k := range keys {
		known[i] = string(k)
	}
	logger.Debug("No registry entry for key.", "key", string(key), "known_keys", known)
}
