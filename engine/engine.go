// Package engine defines the completion engine contract: the component that
// turns a worker persona, a task description and an enumerated list of
// capabilities into a final natural-language answer. The engine's internal
// reasoning loop (deciding which capability to invoke and with what query) is
// opaque to the rest of the system; only its input/output contract and failure
// mode matter here.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/courtscout/tool"
)

// RunSpec captures the normalized engine input produced by the dispatcher.
type RunSpec struct {
	// Role, Goal and Backstory form the worker persona.
	Role      string
	Goal      string
	Backstory string
	// Task is the fully composed task description.
	Task string
	// Tools is the enumerated, ordered capability list the engine may invoke.
	Tools []tool.Tool
}

// Info contains metadata about an engine implementation.
type Info struct {
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
	Model    string `json:"model"`
}

// Engine is the minimal interface the dispatcher needs to execute a task.
// Run blocks until the engine produced a final text answer or failed; it must
// respect context cancellation promptly since runs involve network I/O.
type Engine interface {
	Run(ctx context.Context, spec RunSpec) (string, error)

	// Info returns information about the engine implementation.
	Info() Info
}

// CompletionError wraps a failure of the completion engine or of a capability
// invoked during the run. The core never retries it.
type CompletionError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion engine %s failed: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CompletionError) Unwrap() error { return e.Err }

// SystemPrompt renders the persona section shared by the provider adapters.
// Capabilities are listed in their declared order so the model sees a stable
// enumeration.
func SystemPrompt(spec RunSpec) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %s.\n", spec.Role))
	sb.WriteString(fmt.Sprintf("Your goal: %s\n", spec.Goal))
	if spec.Backstory != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(spec.Backstory))
		sb.WriteString("\n")
	}
	if len(spec.Tools) > 0 {
		sb.WriteString("\nAvailable tools:\n")
		for i, t := range spec.Tools {
			sb.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, t.Name(), t.Description()))
		}
	}
	return sb.String()
}

// FindTool returns the tool with the given name from the spec, or nil.
func (s RunSpec) FindTool(name string) tool.Tool {
	for _, t := range s.Tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// CallLimiter enforces a maximum number of allowed model round trips per run.
type CallLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewCallLimiter creates a new limiter with a max number of calls.
// If max == 0, unlimited calls are allowed.
func NewCallLimiter(max int) *CallLimiter {
	return &CallLimiter{max: max}
}

// Increment increases the call counter and returns an error if the limit is exceeded.
func (cl *CallLimiter) Increment() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.count++
	if cl.max > 0 && cl.count > cl.max {
		return fmt.Errorf("exceeded max model calls: %d", cl.max)
	}

	return nil
}

// Count returns the current number of calls made.
func (cl *CallLimiter) Count() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return cl.count
}

// Remaining returns how many calls are left before hitting the limit.
func (cl *CallLimiter) Remaining() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.max == 0 {
		return -1 // unlimited
	}

	return cl.max - cl.count
}
