package worker

import (
	"testing"

	"github.com/hupe1980/courtscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(role string) *Profile {
	return &Profile{
		Role:     role,
		Goal:     "Research " + role + " topics thoroughly.",
		Template: NewTemplateFromText("Research the following topic."),
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("stats", testProfile("Stats Researcher")))

	p, err := reg.Resolve("stats")
	require.NoError(t, err)
	assert.Equal(t, "Stats Researcher", p.Role)

	_, err = reg.Resolve("missing")
	require.Error(t, err)

	var unknown *core.UnknownRouteError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("stats", testProfile("Stats Researcher")))

	err := reg.Register("stats", testProfile("Another"))
	require.Error(t, err)

	var dup *core.DuplicateRouteError
	assert.ErrorAs(t, err, &dup)
}

func TestRegistryRejectsInvalidProfile(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("stats", &Profile{})
	assert.Error(t, err)
}

func TestRegistryValidate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("stats", testProfile("Stats Researcher")))
	require.NoError(t, reg.Register("injuries", testProfile("Injury Researcher")))

	assert.NoError(t, reg.Validate([]string{"stats", "injuries"}))

	err := reg.Validate([]string{"stats", "injuries", "market"})
	require.Error(t, err)

	var unknown *core.UnknownRouteError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "market", unknown.Name)
}

func TestTemplateStatic(t *testing.T) {
	tmpl := NewTemplateFromText("Research the following topic")
	assert.True(t, tmpl.IsStatic())

	text, err := tmpl.Resolve("lakers roster")
	require.NoError(t, err)
	assert.Equal(t, "Research the following topic", text)
}

func TestTemplatePlaceholder(t *testing.T) {
	tmpl := NewTemplateFromText("Research {{.Request}} and summarize")

	text, err := tmpl.Resolve("lakers roster")
	require.NoError(t, err)
	assert.Equal(t, "Research lakers roster and summarize", text)
}

func TestTemplateEmbedsRequest(t *testing.T) {
	assert.False(t, NewTemplateFromText("Research the following topic").EmbedsRequest())
	assert.True(t, NewTemplateFromText("Research {{.Request}} and summarize").EmbedsRequest())
	assert.True(t, NewTemplateFromFunc(func(request string) (string, error) {
		return request, nil
	}).EmbedsRequest())
}

func TestTemplateProvider(t *testing.T) {
	tmpl := NewTemplateFromFunc(func(request string) (string, error) {
		return "dynamic for " + request, nil
	})
	assert.False(t, tmpl.IsStatic())

	text, err := tmpl.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, "dynamic for x", text)
}
