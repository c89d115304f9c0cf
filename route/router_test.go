package route

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/courtscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEncoder returns fixed vectors per input and counts invocations.
type stubEncoder struct {
	vectors map[string][]float32
	def     []float32
	calls   atomic.Int64
}

func newStubEncoder(vectors map[string][]float32) *stubEncoder {
	return &stubEncoder{vectors: vectors, def: []float32{0, 0, 1}}
}

func (s *stubEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	s.calls.Add(1)
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.def, nil
}

type failingEncoder struct{}

func (failingEncoder) Encode(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("embedding backend unavailable")
}

func TestRouteNew(t *testing.T) {
	r, err := New("stats", "team statistics")
	require.NoError(t, err)
	assert.Equal(t, "stats", r.Name)

	_, err = New("", "utterance")
	assert.Error(t, err)

	_, err = New("empty")
	assert.Error(t, err)
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("stats", "team statistics")))

	err := reg.Register(MustNew("stats", "another utterance"))
	require.Error(t, err)

	var dup *core.DuplicateRouteError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "stats", dup.Name)
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"injuries", "general", "market", "stats"} {
		require.NoError(t, reg.Register(MustNew(name, name+" utterance")))
	}
	assert.Equal(t, []string{"injuries", "general", "market", "stats"}, reg.Names())
}

func TestClassifyExactUtterance(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"team statistics":       {1, 0, 0},
		"player injury updates": {0, 1, 0},
	})

	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("stats", "team statistics")))
	require.NoError(t, reg.Register(MustNew("injuries", "player injury updates")))

	rt := NewRouter(enc, reg)

	match, err := rt.Classify(context.Background(), "team statistics")
	require.NoError(t, err)
	assert.Equal(t, "stats", match.Route)
	assert.InDelta(t, 1.0, match.Score, 1e-6)
}

func TestClassifyDeterministic(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"team statistics": {1, 0, 0},
		"roster question": {0.9, 0.1, 0},
	})

	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("stats", "team statistics")))

	rt := NewRouter(enc, reg, func(o *RouterOptions) { o.Threshold = 0.5 })

	first, err := rt.Classify(context.Background(), "roster question")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := rt.Classify(context.Background(), "roster question")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"team statistics":       {1, 0, 0},
		"best pasta in naples?": {0, 0, 1},
	})

	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("stats", "team statistics")))

	rt := NewRouter(enc, reg, func(o *RouterOptions) { o.Threshold = 0.75 })

	match, err := rt.Classify(context.Background(), "best pasta in naples?")
	require.NoError(t, err, "no match is a normal outcome, not an error")
	assert.False(t, match.Matched())
	assert.Empty(t, match.Route)
	assert.Less(t, match.Score, 0.75)
}

func TestClassifyTieBreakRegistrationOrder(t *testing.T) {
	// Two routes deliberately share the same utterance vector; the earlier
	// registered route must win the tie.
	enc := newStubEncoder(map[string][]float32{
		"team performance": {1, 0, 0},
	})

	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("general", "team performance")))
	require.NoError(t, reg.Register(MustNew("team_performance", "team performance")))

	rt := NewRouter(enc, reg, func(o *RouterOptions) { o.Threshold = 0.5 })

	for i := 0; i < 3; i++ {
		match, err := rt.Classify(context.Background(), "team performance")
		require.NoError(t, err)
		assert.Equal(t, "general", match.Route)
	}
}

func TestClassifyUsesMaxNotMean(t *testing.T) {
	// "narrow" has one perfect utterance and one orthogonal utterance; the
	// orthogonal one must not dilute the score below "broad"'s uniform 0.8.
	enc := newStubEncoder(map[string][]float32{
		"perfect phrasing":  {1, 0, 0},
		"unrelated wording": {0, 1, 0},
		"close phrasing":    {0.8, 0.6, 0},
		"the request":       {1, 0, 0},
	})

	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("broad", "close phrasing")))
	require.NoError(t, reg.Register(MustNew("narrow", "perfect phrasing", "unrelated wording")))

	rt := NewRouter(enc, reg, func(o *RouterOptions) { o.Threshold = 0.5 })

	match, err := rt.Classify(context.Background(), "the request")
	require.NoError(t, err)
	assert.Equal(t, "narrow", match.Route)
	assert.InDelta(t, 1.0, match.Score, 1e-6)
}

func TestClassifyEncoderFailure(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("stats", "team statistics")))

	rt := NewRouter(failingEncoder{}, reg)

	_, err := rt.Classify(context.Background(), "team statistics")
	require.Error(t, err)

	var encErr *core.EncodingError
	assert.ErrorAs(t, err, &encErr)
}

func TestWarmCachesUtteranceEmbeddings(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"team statistics": {1, 0, 0},
	})

	reg := NewRegistry()
	require.NoError(t, reg.Register(MustNew("stats", "team statistics", "roster")))

	require.NoError(t, reg.Warm(context.Background(), enc))
	warmCalls := enc.calls.Load()
	assert.EqualValues(t, 2, warmCalls, "one encode per utterance")

	rt := NewRouter(enc, reg, func(o *RouterOptions) { o.Threshold = 0.5 })
	_, err := rt.Classify(context.Background(), "team statistics")
	require.NoError(t, err)

	// Only the request itself is encoded after warming.
	assert.EqualValues(t, warmCalls+1, enc.calls.Load())
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	assert.InDelta(t, 0.0, cosineSimilarity(a, b, magnitude(a), magnitude(b)), 1e-9)
	assert.InDelta(t, 1.0, cosineSimilarity(a, a, magnitude(a), magnitude(a)), 1e-9)

	zero := []float32{0, 0}
	assert.Zero(t, cosineSimilarity(a, zero, magnitude(a), magnitude(zero)))
}
