package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hupe1980/courtscout/logging"
	"golang.org/x/net/html"
)

const (
	defaultSearchEndpoint = "https://html.duckduckgo.com/html/"
	defaultMaxResults     = 10
	maxResultsCap         = 30
	maxResponseBytes      = 1 << 20 // 1MB
)

// SearchResult represents a single web search result.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchToolOptions configures the web search tool.
type SearchToolOptions struct {
	// Endpoint is the DuckDuckGo HTML endpoint. Overridable for tests.
	Endpoint string
	// HTTPClient performs the requests. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	// MaxResults bounds the number of results returned per query.
	MaxResults int
	// Logger receives per-query diagnostics.
	Logger logging.Logger
}

// SearchTool searches the web through the DuckDuckGo HTML interface, which
// requires no API key. Results are rendered as a compact markdown list so the
// completion engine can cite titles and URLs directly.
type SearchTool struct {
	endpoint   string
	client     *http.Client
	maxResults int
	logger     logging.Logger
}

// NewSearchTool creates a web search capability.
func NewSearchTool(optFns ...func(o *SearchToolOptions)) *SearchTool {
	opts := SearchToolOptions{
		Endpoint:   defaultSearchEndpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxResults: defaultMaxResults,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxResults > maxResultsCap {
		opts.MaxResults = maxResultsCap
	}

	return &SearchTool{
		endpoint:   opts.Endpoint,
		client:     opts.HTTPClient,
		maxResults: opts.MaxResults,
		logger:     opts.Logger,
	}
}

// Name implements Tool.
func (t *SearchTool) Name() string { return "web_search" }

// Description implements Tool.
func (t *SearchTool) Description() string {
	return "Search the web for current information using DuckDuckGo"
}

// Parameters implements Tool.
func (t *SearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	}
}

// Call implements Tool.
func (t *SearchTool) Call(ctx context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", NewToolError(t.Name(), "query is required", CodeValidation)
	}

	t.logger.Debug("search.start", "tool", t.Name(), "query", query)

	results, err := searchDuckDuckGo(ctx, t.client, t.endpoint, query, t.maxResults)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		t.logger.Info("search.empty", "tool", t.Name(), "query", query)
		return "No results found for: " + query, nil
	}

	t.logger.Info("search.done", "tool", t.Name(), "query", query, "results", len(results))

	return formatResults(query, results), nil
}

// formatResults renders search results as markdown.
func formatResults(query string, results []SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Search results for %q (%d found):\n\n", query, len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, r.Title, r.URL))
		if r.Snippet != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", r.Snippet))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// searchDuckDuckGo performs a search against the DuckDuckGo HTML interface.
func searchDuckDuckGo(ctx context.Context, client *http.Client, endpoint, query string, maxResults int) ([]SearchResult, error) {
	searchURL := fmt.Sprintf("%s?q=%s", endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, NewToolError("web_search", fmt.Sprintf("build request: %v", err), CodeHTTP)
	}

	// Plain library user agents get blocked; look like a browser.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, NewToolError("web_search", fmt.Sprintf("request failed: %v", err), CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewToolError("web_search", fmt.Sprintf("unexpected status %d", resp.StatusCode), CodeHTTP)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, NewToolError("web_search", fmt.Sprintf("read response: %v", err), CodeHTTP)
	}

	return parseSearchResults(string(body), maxResults)
}

// parseSearchResults extracts search results from DuckDuckGo HTML.
// The HTML interface marks each hit with class="result results_links ...".
func parseSearchResults(htmlContent string, maxResults int) ([]SearchResult, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, NewToolError("web_search", fmt.Sprintf("parse HTML: %v", err), CodeParse)
	}

	var results []SearchResult

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}

		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") && hasClass(n, "results_links") {
			if r := extractResult(n); r.URL != "" && r.Title != "" {
				results = append(results, r)
			}
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results, nil
}

// extractResult pulls title, URL and snippet out of a result div.
func extractResult(n *html.Node) SearchResult {
	var r SearchResult

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch {
			case node.Data == "a" && hasClass(node, "result__a"):
				r.Title = textContent(node)
				r.URL = cleanResultURL(attrValue(node, "href"))
			case hasClass(node, "result__snippet"):
				r.Snippet = textContent(node)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return r
}

// cleanResultURL strips DuckDuckGo's redirect wrapper (//duckduckgo.com/l/?uddg=<target>).
func cleanResultURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if target := u.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return raw
}

// hasClass reports whether a node carries the given CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes under n, whitespace normalized.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
