package engine

import (
	"context"
	"fmt"
	"sync"
)

// MockEngine is a lightweight in-memory Engine useful for tests & examples.
// It records every RunSpec it receives and answers with canned responses
// keyed by task description, falling back to a generated string.
type MockEngine struct {
	mu        sync.Mutex
	responses map[string]string
	runs      []RunSpec
	err       error
}

// NewMockEngine constructs a MockEngine.
func NewMockEngine() *MockEngine {
	return &MockEngine{responses: make(map[string]string)}
}

// AddResponse registers a deterministic canned answer for a task description.
func (m *MockEngine) AddResponse(task, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[task] = response
}

// FailWith makes every subsequent Run return the given error.
func (m *MockEngine) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Runs returns a copy of all recorded run specs.
func (m *MockEngine) Runs() []RunSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RunSpec, len(m.runs))
	copy(out, m.runs)
	return out
}

// Run implements Engine.
func (m *MockEngine) Run(ctx context.Context, spec RunSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &CompletionError{Provider: "mock", Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs = append(m.runs, spec)

	if m.err != nil {
		return "", &CompletionError{Provider: "mock", Err: m.err}
	}

	if resp, ok := m.responses[spec.Task]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock research result for: %s", spec.Task), nil
}

// Info implements Engine.
func (m *MockEngine) Info() Info { return Info{Provider: "mock", Model: "mock"} }
