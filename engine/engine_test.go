package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/courtscout/tool"
)

type fakeTool struct {
	name string
	desc string
}

func (f *fakeTool) Name() string               { return f.name }
func (f *fakeTool) Description() string        { return f.desc }
func (f *fakeTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (f *fakeTool) Call(context.Context, map[string]any) (string, error) {
	return "", nil
}

func TestSystemPromptEnumeratesToolsInOrder(t *testing.T) {
	spec := RunSpec{
		Role:      "NBA Stats Researcher",
		Goal:      "Conduct in-depth research on NBA statistics.",
		Backstory: "Skilled in combining search and stats tools.",
		Tools: []tool.Tool{
			&fakeTool{name: "web_search", desc: "Search the web"},
			&fakeTool{name: "fetch_nba_stats", desc: "Fetch team stats"},
		},
	}

	prompt := SystemPrompt(spec)
	assert.Contains(t, prompt, "You are NBA Stats Researcher.")
	assert.Contains(t, prompt, "Your goal: Conduct in-depth research on NBA statistics.")
	assert.Contains(t, prompt, "Skilled in combining search and stats tools.")
	assert.Contains(t, prompt, "1. web_search: Search the web")
	assert.Contains(t, prompt, "2. fetch_nba_stats: Fetch team stats")
	assert.Less(t, strings.Index(prompt, "web_search"), strings.Index(prompt, "fetch_nba_stats"))
}

func TestRunSpecFindTool(t *testing.T) {
	search := &fakeTool{name: "web_search"}
	spec := RunSpec{Tools: []tool.Tool{search}}

	assert.Equal(t, tool.Tool(search), spec.FindTool("web_search"))
	assert.Nil(t, spec.FindTool("missing"))
}

func TestCallLimiter(t *testing.T) {
	cl := NewCallLimiter(2)
	assert.NoError(t, cl.Increment())
	assert.NoError(t, cl.Increment())
	assert.Error(t, cl.Increment())
	assert.Equal(t, 3, cl.Count())
	assert.Equal(t, -1, NewCallLimiter(0).Remaining())
}

func TestMockEngineCannedResponse(t *testing.T) {
	m := NewMockEngine()
	m.AddResponse("research lakers", "LeBron leads the Lakers.")

	out, err := m.Run(context.Background(), RunSpec{Task: "research lakers"})
	require.NoError(t, err)
	assert.Equal(t, "LeBron leads the Lakers.", out)

	runs := m.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "research lakers", runs[0].Task)
}

func TestMockEngineFailure(t *testing.T) {
	m := NewMockEngine()
	m.FailWith(errors.New("provider down"))

	_, err := m.Run(context.Background(), RunSpec{Task: "anything"})
	require.Error(t, err)

	var compErr *CompletionError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "mock", compErr.Provider)
}

func TestMockEngineRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMockEngine()
	_, err := m.Run(ctx, RunSpec{Task: "anything"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Runs(), "cancelled runs are not recorded")
}
