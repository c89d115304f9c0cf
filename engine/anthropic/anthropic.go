// Package anthropic implements the completion engine contract on top of the
// Anthropic Messages API (including tool use).
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/hupe1980/courtscout/engine"
	"github.com/hupe1980/courtscout/tool"
)

// Options configures the Anthropic engine adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	// MaxToolRounds caps model round trips per run. 0 means unlimited.
	MaxToolRounds int
}

// Engine wraps the Anthropic Messages API behind the generic engine.Engine interface.
type Engine struct {
	client *anthropic.Client
	opts   Options
}

// NewEngine creates a new Anthropic engine using the official client
func NewEngine(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Model:         anthropic.ModelClaude3_5Sonnet20241022,
		Temperature:   0.7,
		MaxTokens:     4096,
		MaxToolRounds: 8,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Engine{
		client: &client,
		opts:   opts,
	}
}

// NewEngineFromClient creates a new Anthropic engine from an existing client
func NewEngineFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Model:         anthropic.ModelClaude3_5Sonnet20241022,
		Temperature:   0.7,
		MaxTokens:     4096,
		MaxToolRounds: 8,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		client: client,
		opts:   opts,
	}
}

// Run implements engine.Engine. It drives the Messages API until the model
// stops requesting tool use, executing each requested capability and feeding
// the results back as tool_result blocks.
func (e *Engine) Run(ctx context.Context, spec engine.RunSpec) (string, error) {
	limiter := engine.NewCallLimiter(e.opts.MaxToolRounds)

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(spec.Task)),
	}

	params := anthropic.MessageNewParams{
		Model:       e.opts.Model,
		MaxTokens:   e.opts.MaxTokens,
		Temperature: anthropic.Float(e.opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: engine.SystemPrompt(spec)},
		},
		Tools: buildTools(spec.Tools),
	}

	for {
		if err := limiter.Increment(); err != nil {
			return "", &engine.CompletionError{Provider: "anthropic", Err: err}
		}

		params.Messages = messages

		resp, err := e.client.Messages.New(ctx, params)
		if err != nil {
			return "", &engine.CompletionError{Provider: "anthropic", Err: fmt.Errorf("messages api: %w", err)}
		}

		if resp.StopReason != anthropic.StopReasonToolUse {
			return finalText(resp), nil
		}

		messages = append(messages, resp.ToParam())

		var results []anthropic.ContentBlockParamUnion
		for _, block := range resp.Content {
			if block.Type != "tool_use" {
				continue
			}
			toolBlock := block.AsToolUse()

			rawArgs := ""
			if toolBlock.Input != nil {
				if argBytes, err := json.Marshal(toolBlock.Input); err == nil {
					rawArgs = string(argBytes)
				}
			}

			result, err := e.executeToolCall(ctx, spec, toolBlock.Name, rawArgs)
			if err != nil {
				return "", err
			}
			results = append(results, anthropic.NewToolResultBlock(toolBlock.ID, result, false))
		}

		if len(results) == 0 {
			return "", &engine.CompletionError{Provider: "anthropic", Err: fmt.Errorf("tool_use stop without tool_use blocks")}
		}

		messages = append(messages, anthropic.NewUserMessage(results...))
	}
}

// executeToolCall resolves and invokes a requested capability.
func (e *Engine) executeToolCall(ctx context.Context, spec engine.RunSpec, name, rawArgs string) (string, error) {
	t := spec.FindTool(name)
	if t == nil {
		return "", &engine.CompletionError{Provider: "anthropic", Err: fmt.Errorf("model requested unknown tool %q", name)}
	}

	args, err := decodeArgs(rawArgs)
	if err != nil {
		return "", &engine.CompletionError{Provider: "anthropic", Err: fmt.Errorf("decode arguments for %q: %w", name, err)}
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		return "", &engine.CompletionError{Provider: "anthropic", Err: err}
	}

	return result, nil
}

// Info returns metadata describing this Anthropic engine implementation.
func (e *Engine) Info() engine.Info {
	return engine.Info{Provider: "anthropic", Model: string(e.opts.Model)}
}

// decodeArgs parses the JSON argument payload of a tool_use block.
func decodeArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, err
	}
	return args, nil
}

// finalText concatenates the text blocks of a completed message.
func finalText(resp *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String()
}

// buildTools converts capability metadata into Anthropic tool definitions,
// preserving the declared order.
func buildTools(tools []tool.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	out := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}

		if params := t.Parameters(); params != nil {
			if properties, exists := params["properties"]; exists {
				inputSchema.Properties = properties
			}
			if required, exists := params["required"]; exists {
				if reqSlice, ok := required.([]string); ok {
					inputSchema.Required = reqSlice
				} else if reqInterface, ok := required.([]interface{}); ok {
					// Convert []interface{} to []string
					var reqStrings []string
					for _, r := range reqInterface {
						if s, ok := r.(string); ok {
							reqStrings = append(reqStrings, s)
						}
					}
					inputSchema.Required = reqStrings
				}
			}
		}

		out[i] = anthropic.ToolUnionParamOfTool(inputSchema, t.Name())
	}

	return out
}
