package route

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/courtscout/core"
)

// Route is a named intent defined by example utterances. Utterances never
// mutate after construction; their embeddings are computed once and reused
// since the encoder is a pure function of the text.
type Route struct {
	Name       string
	Utterances []string

	mu         sync.Mutex
	embeddings [][]float32
	magnitudes []float64
}

// New constructs a Route. Every route must carry at least one utterance.
func New(name string, utterances ...string) (*Route, error) {
	if name == "" {
		return nil, fmt.Errorf("route name must not be empty")
	}
	if len(utterances) == 0 {
		return nil, fmt.Errorf("route %q must have at least one utterance", name)
	}
	return &Route{Name: name, Utterances: utterances}, nil
}

// MustNew is like New but panics on error. Intended for static taxonomy
// definitions where a failure is a programming mistake.
func MustNew(name string, utterances ...string) *Route {
	r, err := New(name, utterances...)
	if err != nil {
		panic(err)
	}
	return r
}

// vectors returns the cached utterance embeddings, computing them on first
// use. The mutex makes the one-time fill safe under concurrent classification;
// once populated the cache is read-only.
func (r *Route) vectors(ctx context.Context, enc core.Encoder) ([][]float32, []float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.embeddings != nil {
		return r.embeddings, r.magnitudes, nil
	}

	embeddings := make([][]float32, 0, len(r.Utterances))
	magnitudes := make([]float64, 0, len(r.Utterances))
	for _, u := range r.Utterances {
		vec, err := enc.Encode(ctx, u)
		if err != nil {
			return nil, nil, &core.EncodingError{Text: u, Err: err}
		}
		embeddings = append(embeddings, vec)
		magnitudes = append(magnitudes, magnitude(vec))
	}

	r.embeddings = embeddings
	r.magnitudes = magnitudes

	return r.embeddings, r.magnitudes, nil
}

// Registry holds the canonical intent taxonomy in registration order.
// Registration order is significant: it is the deterministic tie-break when
// two routes achieve an identical best score, which matters because several
// routes in the default taxonomy contain semantically overlapping utterances.
type Registry struct {
	mu     sync.Mutex
	routes []*Route
	byName map[string]*Route
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Route)}
}

// Register adds a named route. Registering a name twice is a configuration
// defect and fails with a DuplicateRouteError.
func (reg *Registry) Register(r *Route) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.byName[r.Name]; exists {
		return &core.DuplicateRouteError{Name: r.Name}
	}

	reg.byName[r.Name] = r
	reg.routes = append(reg.routes, r)

	return nil
}

// Routes returns all routes in stable registration order. The returned slice
// is a copy to prevent external modification of the internal ordering.
func (reg *Registry) Routes() []*Route {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	result := make([]*Route, len(reg.routes))
	copy(result, reg.routes)
	return result
}

// Names returns the registered route names in registration order.
func (reg *Registry) Names() []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	names := make([]string, len(reg.routes))
	for i, r := range reg.routes {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of registered routes.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.routes)
}

// Warm eagerly computes and caches the utterance embeddings of every route.
// Calling it during initialization moves encoder latency (and failures) out
// of the first request's critical path.
func (reg *Registry) Warm(ctx context.Context, enc core.Encoder) error {
	for _, r := range reg.Routes() {
		if _, _, err := r.vectors(ctx, enc); err != nil {
			return fmt.Errorf("warm route %q: %w", r.Name, err)
		}
	}
	return nil
}
