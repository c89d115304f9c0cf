package core

import (
	"context"
	"fmt"
)

// Encoder turns an arbitrary text string into a fixed-length numeric vector.
//
// Implementations must be deterministic for equal input: the same text always
// yields the same vector. This guarantee is what makes utterance embedding
// caching safe for the process lifetime.
//
// Implementations should respect context cancellation since encoding usually
// involves network I/O against an embedding model.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// EncoderFunc is a functional adapter to allow ordinary functions to be used
// as Encoders, primarily in tests.
type EncoderFunc func(ctx context.Context, text string) ([]float32, error)

// Encode implements Encoder.
func (f EncoderFunc) Encode(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

// EncodingError wraps a failure of the embedding backend. It is distinct from
// the "no match" routing outcome, which is a normal, representable result.
type EncodingError struct {
	Text string // input that failed to encode (may be truncated by callers)
	Err  error  // underlying cause
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *EncodingError) Unwrap() error { return e.Err }
