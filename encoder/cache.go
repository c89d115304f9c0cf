package encoder

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hupe1980/courtscout/core"
)

// DefaultCacheSize bounds the embedding cache. Utterance vectors dominate the
// working set and the taxonomy is small, so a few thousand entries is plenty.
const DefaultCacheSize = 4096

// CachedEncoder decorates an Encoder with an LRU cache keyed by the exact
// input text. Encoders are pure functions of their input, which makes
// caching safe; it avoids re-embedding repeated requests and the static
// utterance set.
type CachedEncoder struct {
	inner core.Encoder
	cache *lru.Cache[string, []float32]
}

// CachedEncoderOptions configure the cache decorator.
type CachedEncoderOptions struct {
	// Size is the maximum number of cached embeddings.
	Size int
}

// NewCachedEncoder wraps an encoder with an LRU embedding cache.
func NewCachedEncoder(inner core.Encoder, optFns ...func(o *CachedEncoderOptions)) (*CachedEncoder, error) {
	opts := CachedEncoderOptions{Size: DefaultCacheSize}
	for _, fn := range optFns {
		fn(&opts)
	}

	cache, err := lru.New[string, []float32](opts.Size)
	if err != nil {
		return nil, err
	}

	return &CachedEncoder{inner: inner, cache: cache}, nil
}

// Encode implements core.Encoder.
func (e *CachedEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}

	vec, err := e.inner.Encode(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cache.Add(text, vec)

	return vec, nil
}

// Len returns the number of cached embeddings.
func (e *CachedEncoder) Len() int { return e.cache.Len() }
