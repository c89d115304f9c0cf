package tool

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/courtscout/logging"
)

// SiteSearchToolOptions configures the site-scoped search tool.
type SiteSearchToolOptions struct {
	// Endpoint is the DuckDuckGo HTML endpoint. Overridable for tests.
	Endpoint string
	// HTTPClient performs the requests. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	// MaxResults bounds the number of results consulted per query.
	MaxResults int
	// Logger receives per-query diagnostics.
	Logger logging.Logger
}

// SiteSearchTool answers nuanced queries by scoping a search to a specific
// site and condensing the top snippets into a short answer text. It is the
// counterpart of the general SearchTool for queries where one authoritative
// domain is known to carry the answer.
type SiteSearchTool struct {
	endpoint   string
	client     *http.Client
	maxResults int
	logger     logging.Logger
}

// NewSiteSearchTool creates a site-scoped search capability.
func NewSiteSearchTool(optFns ...func(o *SiteSearchToolOptions)) *SiteSearchTool {
	opts := SiteSearchToolOptions{
		Endpoint:   defaultSearchEndpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxResults: 5,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxResults > maxResultsCap {
		opts.MaxResults = maxResultsCap
	}

	return &SiteSearchTool{
		endpoint:   opts.Endpoint,
		client:     opts.HTTPClient,
		maxResults: opts.MaxResults,
		logger:     opts.Logger,
	}
}

// Name implements Tool.
func (t *SiteSearchTool) Name() string { return "site_search" }

// Description implements Tool.
func (t *SiteSearchTool) Description() string {
	return "Search a specific website for an answer to a nuanced query"
}

// Parameters implements Tool.
func (t *SiteSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The question to answer",
			},
			"site": map[string]any{
				"type":        "string",
				"description": "Domain to scope the search to, e.g. 'espn.com'. Optional.",
			},
		},
		"required": []string{"query"},
	}
}

// Call implements Tool.
func (t *SiteSearchTool) Call(ctx context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", NewToolError(t.Name(), "query is required", CodeValidation)
	}

	site, _ := args["site"].(string)
	scoped := query
	if site != "" {
		scoped = fmt.Sprintf("site:%s %s", site, query)
	}

	t.logger.Debug("search.start", "tool", t.Name(), "query", scoped)

	results, err := searchDuckDuckGo(ctx, t.client, t.endpoint, scoped, t.maxResults)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		t.logger.Info("search.empty", "tool", t.Name(), "query", scoped)
		return "No answer found for: " + query, nil
	}

	t.logger.Info("search.done", "tool", t.Name(), "query", scoped, "results", len(results))

	// Condense the snippets; the top hits usually contain the answer text.
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Answer material for %q:\n\n", query))
	var snippets int
	for _, r := range results {
		if r.Snippet == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", r.Snippet, r.URL))
		snippets++
	}
	if snippets == 0 {
		return "No answer found for: " + query, nil
	}

	return sb.String(), nil
}
