// Package tool implements the capability subsystem that lets research workers
// invoke bounded external actions (web search, site-scoped search, domain data
// fetches) with schema validated arguments, consistent error handling and rich
// metadata for LLM guidance.
package tool

import (
	"context"
	"fmt"
)

// Tool defines the interface for extending worker capabilities with external functions.
//
// Tools are bound to worker profiles and exposed to the completion engine as
// an enumerated, ordered list of function declarations. The engine decides
// which tool to invoke and with what arguments; the tool returns a textual
// result that feeds back into the worker's narrative.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Respect context cancellation (invocations usually involve network I/O)
//   - Be thread-safe: one tool instance may serve concurrent requests
type Tool interface {
	// Name returns the unique identifier for this tool.
	// Names should be descriptive and follow function naming conventions (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the LLM to help it understand when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	// This schema is used for parameter validation and LLM function calling.
	Parameters() map[string]interface{}

	// Call executes the tool with structured arguments and returns a textual
	// result. Arguments are parsed from JSON and validated against the tool's
	// schema before execution.
	Call(ctx context.Context, args map[string]interface{}) (string, error)
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string      `json:"tool"`              // Name of the tool that failed
	Message string      `json:"message"`           // Error message
	Code    string      `json:"code"`              // Error code for categorization
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// Error codes used across the built-in tools.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodeHTTP       = "HTTP_ERROR"
	CodeParse      = "PARSE_ERROR"
)

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
