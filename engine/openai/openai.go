// Package openai implements the completion engine contract on top of the
// OpenAI Chat Completions API (including function/tool calling). It adapts
// CourtScout's RunSpec into the SDK's message format, drives the iterative
// tool-call loop to completion and returns the final assistant text.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/courtscout/engine"
	"github.com/hupe1980/courtscout/tool"
	"github.com/openai/openai-go"
)

// Options configure the OpenAI engine adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	// MaxToolRounds caps model round trips per run. 0 means unlimited.
	MaxToolRounds int
}

// Engine wraps the OpenAI Chat Completions API behind the generic engine.Engine interface.
type Engine struct {
	client *openai.Client
	opts   Options
}

// NewEngine creates a new OpenAI engine using the official client
func NewEngine(optFns ...func(o *Options)) *Engine {
	client := openai.NewClient()
	return NewEngineFromClient(&client, optFns...)
}

// NewEngineFromClient creates a new OpenAI engine from an existing client
func NewEngineFromClient(client *openai.Client, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
		MaxToolRounds:       8,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{client: client, opts: opts}
}

// Run implements engine.Engine. It issues chat completions until the model
// stops requesting tool calls, executing each requested capability in order
// and feeding the results back. Any capability or API failure aborts the run
// with a CompletionError; the caller decides whether to retry.
func (e *Engine) Run(ctx context.Context, spec engine.RunSpec) (string, error) {
	limiter := engine.NewCallLimiter(e.opts.MaxToolRounds)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(engine.SystemPrompt(spec)),
		openai.UserMessage(spec.Task),
	}

	params := openai.ChatCompletionNewParams{
		Model:               e.opts.Model,
		Temperature:         openai.Float(e.opts.Temperature),
		MaxCompletionTokens: openai.Int(e.opts.MaxCompletionTokens),
		Tools:               buildTools(spec.Tools),
	}

	for {
		if err := limiter.Increment(); err != nil {
			return "", &engine.CompletionError{Provider: "openai", Err: err}
		}

		params.Messages = messages

		resp, err := e.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", &engine.CompletionError{Provider: "openai", Err: fmt.Errorf("chat completion: %w", err)}
		}

		if len(resp.Choices) == 0 {
			return "", &engine.CompletionError{Provider: "openai", Err: fmt.Errorf("empty response: no choices")}
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg.ToParam())

		for _, tc := range msg.ToolCalls {
			result, err := e.executeToolCall(ctx, spec, tc.Function.Name, tc.Function.Arguments)
			if err != nil {
				return "", err
			}
			messages = append(messages, openai.ToolMessage(result, tc.ID))
		}
	}
}

// executeToolCall resolves and invokes a requested capability.
func (e *Engine) executeToolCall(ctx context.Context, spec engine.RunSpec, name, rawArgs string) (string, error) {
	t := spec.FindTool(name)
	if t == nil {
		return "", &engine.CompletionError{Provider: "openai", Err: fmt.Errorf("model requested unknown tool %q", name)}
	}

	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return "", &engine.CompletionError{Provider: "openai", Err: fmt.Errorf("decode arguments for %q: %w", name, err)}
		}
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		return "", &engine.CompletionError{Provider: "openai", Err: err}
	}

	return result, nil
}

// buildTools converts capability metadata into OpenAI tool definitions,
// preserving the declared order.
func buildTools(tools []tool.Tool) []openai.ChatCompletionToolParam {
	if len(tools) == 0 {
		return nil
	}
	out := make([]openai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		out[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  t.Parameters(),
			},
		}
	}
	return out
}

// Info returns metadata describing this OpenAI engine implementation.
func (e *Engine) Info() engine.Info {
	return engine.Info{Provider: "openai", Model: e.opts.Model}
}
