package core

import "fmt"

// The error taxonomy separates three failure classes:
//
//   - caller mistakes (InvalidRequestError, UnroutableRequestError) which are
//     recoverable by fixing or rephrasing the request
//   - configuration defects (DuplicateRouteError, UnknownRouteError) which are
//     fatal at startup and must not occur at request time once validation ran
//   - external collaborator failures (EncodingError, tool and completion
//     errors) which surface to the caller wrapped in an ExecutionError
//
// The core never retries on its own; retry policy against paid or rate-limited
// services is the caller's cost decision.

// InvalidRequestError reports an empty or whitespace-only research request.
// It is raised before classification; no encoder or capability is invoked.
type InvalidRequestError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// UnroutableRequestError reports that no route scored above the confidence
// threshold. Best carries the highest score seen so the caller can decide
// between rephrasing, falling back or surfacing the failure.
type UnroutableRequestError struct {
	Best RouteMatch
}

// Error implements the error interface.
func (e *UnroutableRequestError) Error() string {
	if e.Best.Route != "" {
		return fmt.Sprintf("no route confidently matches request (best %q at %.3f)", e.Best.Route, e.Best.Score)
	}
	return fmt.Sprintf("no route confidently matches request (best score %.3f)", e.Best.Score)
}

// DuplicateRouteError reports registration of a route name that already exists.
type DuplicateRouteError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("route %q is already registered", e.Name)
}

// UnknownRouteError reports a route name with no registered worker profile.
// Startup validation turns this into an initialization failure so it cannot
// surface mid-request.
type UnknownRouteError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("no worker profile registered for route %q", e.Name)
}

// ExecutionError wraps any external collaborator failure (encoder, capability
// or completion engine) raised while dispatching a request. Route records the
// attempted route, if classification got that far.
type ExecutionError struct {
	RequestID string
	Route     string
	Err       error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("execution failed for route %q: %v", e.Route, e.Err)
	}
	return fmt.Sprintf("execution failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExecutionError) Unwrap() error { return e.Err }
