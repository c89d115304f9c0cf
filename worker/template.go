package worker

import (
	"strings"

	"github.com/hupe1980/courtscout/internal/util"
)

// TemplateProvider supplies dynamic task template text at runtime.
type TemplateProvider interface {
	TaskTemplate(request string) (string, error)
}

// TemplateFunc is a functional adapter to allow ordinary functions to be used
// as TemplateProviders.
type TemplateFunc func(request string) (string, error)

// TaskTemplate implements TemplateProvider.
func (f TemplateFunc) TaskTemplate(request string) (string, error) { return f(request) }

// Template represents either a static task template string or a dynamic
// provider. This mirrors a union of string | provider in a Go-idiomatic way.
// Static text may contain {{.Request}} placeholders rendered at resolve time.
type Template struct {
	text     string
	provider TemplateProvider
}

// NewTemplateFromText creates a Template from a static string.
func NewTemplateFromText(text string) Template { return Template{text: text} }

// NewTemplateFromProvider creates a Template from a dynamic provider.
func NewTemplateFromProvider(p TemplateProvider) Template { return Template{provider: p} }

// NewTemplateFromFunc creates a Template from a function.
func NewTemplateFromFunc(f func(request string) (string, error)) Template {
	return Template{provider: TemplateFunc(f)}
}

// IsStatic returns true if the template is backed by a static string.
func (t Template) IsStatic() bool { return t.provider == nil }

// EmbedsRequest reports whether resolving the template already places the
// request into the resolved text. Providers receive the request and are
// expected to consume it; static text embeds it only when it references the
// .Request placeholder. Callers that append the request to the resolved text
// use this to avoid duplicating it.
func (t Template) EmbedsRequest() bool {
	if t.provider != nil {
		return true
	}
	return strings.Contains(t.text, ".Request")
}

// Resolve returns the template text, invoking the provider if needed and
// rendering any {{.Request}} placeholders in static text.
func (t Template) Resolve(request string) (string, error) {
	if t.provider != nil {
		return t.provider.TaskTemplate(request)
	}
	return util.RenderTemplate(t.text, map[string]any{"Request": request})
}
