// Package worker defines the static worker profiles bound to routes. A
// profile is pure data: persona (role, goal, backstory), the capability set
// the worker may invoke and the task template its work is framed with.
// Behavior differences between workers are entirely data driven; there is no
// per-worker type hierarchy and no delegation between workers.
package worker

import (
	"fmt"
	"sync"

	"github.com/hupe1980/courtscout/core"
	"github.com/hupe1980/courtscout/tool"
)

// Profile is the static configuration bound to a route name. Profiles are
// registered once at startup and immutable afterwards, safe for concurrent
// reads during request processing.
type Profile struct {
	// Role is the short job title shown to the completion engine.
	Role string
	// Goal states what the worker optimizes for.
	Goal string
	// Backstory is the free-text persona description including the worker's
	// method for combining its capabilities.
	Backstory string
	// Capabilities is the enumerated, ordered list of tools the worker may
	// invoke. Order is preserved when the list is exposed to the engine.
	Capabilities []tool.Tool
	// Template frames the task description composed at dispatch time.
	Template Template
}

// Validate checks the profile's structural invariants.
func (p *Profile) Validate() error {
	if p.Role == "" {
		return fmt.Errorf("profile role must not be empty")
	}
	if p.Goal == "" {
		return fmt.Errorf("profile %q: goal must not be empty", p.Role)
	}
	return nil
}

// Registry is the static lookup from route name to worker profile. It is a
// 1:1 mapping: every registered route must have exactly one profile.
type Registry struct {
	mu       sync.Mutex
	profiles map[string]*Profile
}

// NewRegistry creates an empty worker registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register binds a profile to a route name. Registering a name twice is a
// configuration defect.
func (reg *Registry) Register(routeName string, p *Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", routeName, err)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.profiles[routeName]; exists {
		return &core.DuplicateRouteError{Name: routeName}
	}
	reg.profiles[routeName] = p

	return nil
}

// Resolve returns the profile for a route name. A missing profile is a
// configuration-consistency violation surfaced as UnknownRouteError; startup
// validation (Validate) guarantees this cannot happen at request time.
func (reg *Registry) Resolve(routeName string) (*Profile, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	p, ok := reg.profiles[routeName]
	if !ok {
		return nil, &core.UnknownRouteError{Name: routeName}
	}
	return p, nil
}

// Validate checks that every given route name resolves to a profile. It runs
// eagerly at startup so configuration gaps fail initialization instead of
// being discovered mid-request.
func (reg *Registry) Validate(routeNames []string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, name := range routeNames {
		if _, ok := reg.profiles[name]; !ok {
			return &core.UnknownRouteError{Name: name}
		}
	}
	return nil
}

// Len returns the number of registered profiles.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.profiles)
}
