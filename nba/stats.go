package nba

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/courtscout/logging"
	"github.com/hupe1980/courtscout/tool"
	"golang.org/x/net/html"
)

const (
	defaultBaseURL   = "https://www.basketball-reference.com"
	maxFetchBytes    = 4 << 20 // basketball-reference team pages are large
	maxRosterRows    = 20
	maxPerGameRows   = 15
	statsToolName    = "fetch_nba_stats"
	injuriesToolName = "fetch_nba_injuries"
)

// StatsToolOptions configures the roster/stats fetch capability.
type StatsToolOptions struct {
	// BaseURL is the basketball-reference root. Overridable for tests.
	BaseURL string
	// HTTPClient performs the requests.
	HTTPClient *http.Client
	// Now supplies the clock used to pick the current season page.
	Now func() time.Time
	// Logger receives per-fetch diagnostics.
	Logger logging.Logger
}

// StatsTool fetches a team's roster and per-game player statistics from
// basketball-reference.com. It takes a team name or abbreviation and renders
// the roster plus per-game scoring lines as plain text for the worker.
type StatsTool struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
	logger  logging.Logger
}

// NewStatsTool creates the roster/stats fetch capability.
func NewStatsTool(optFns ...func(o *StatsToolOptions)) *StatsTool {
	opts := StatsToolOptions{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Now:        time.Now,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &StatsTool{baseURL: opts.BaseURL, client: opts.HTTPClient, now: opts.Now, logger: opts.Logger}
}

// Name implements tool.Tool.
func (t *StatsTool) Name() string { return statsToolName }

// Description implements tool.Tool.
func (t *StatsTool) Description() string {
	return "Fetch a team's current roster and detailed per-game player stats from basketball-reference.com"
}

// Parameters implements tool.Tool.
func (t *StatsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"team": map[string]any{
				"type":        "string",
				"description": "Team name or three-letter abbreviation, e.g. 'Los Angeles Lakers' or 'LAL'",
			},
		},
		"required": []string{"team"},
	}
}

// Call implements tool.Tool.
func (t *StatsTool) Call(ctx context.Context, args map[string]any) (string, error) {
	teamRef, _ := args["team"].(string)
	if teamRef == "" {
		return "", tool.NewToolError(t.Name(), "team is required", tool.CodeValidation)
	}

	abbr, err := ResolveTeam(teamRef)
	if err != nil {
		return "", tool.NewToolError(t.Name(), err.Error(), tool.CodeValidation)
	}

	season := SeasonYear(t.now())
	pageURL := fmt.Sprintf("%s/teams/%s/%d.html", t.baseURL, abbr, season)

	t.logger.Debug("stats.fetch", "team", abbr, "season", season, "url", pageURL)

	doc, err := fetchDocument(ctx, t.client, t.Name(), pageURL)
	if err != nil {
		return "", err
	}

	roster := findTableByID(doc, "roster")
	perGame := findTableByID(doc, "per_game_stats")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %d season (from basketball-reference.com)\n\n", abbr, season))

	var sections int
	if txt := roster.render(maxRosterRows, []string{"No.", "Player", "Pos", "Ht", "Wt", "Exp"}); txt != "" {
		sb.WriteString("Roster:\n")
		sb.WriteString(txt)
		sb.WriteString("\n")
		sections++
	}

	if txt := perGame.render(maxPerGameRows, []string{"Player", "G", "MP", "PTS", "TRB", "AST", "FG%", "3P%"}); txt != "" {
		sb.WriteString("Per-game player stats:\n")
		sb.WriteString(txt)
		sections++
	}

	if sections == 0 {
		return "", tool.NewToolError(t.Name(), fmt.Sprintf("no roster or stats tables found for %s", abbr), tool.CodeParse)
	}

	t.logger.Info("stats.fetched", "team", abbr, "season", season)

	return sb.String(), nil
}

// fetchDocument retrieves and parses an HTML page, normalizing failures into
// ToolErrors so the dispatcher sees a uniform capability error shape.
func fetchDocument(ctx context.Context, client *http.Client, toolName, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, tool.NewToolError(toolName, fmt.Sprintf("build request: %v", err), tool.CodeHTTP)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, tool.NewToolError(toolName, fmt.Sprintf("request failed: %v", err), tool.CodeHTTP)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tool.NewToolError(toolName, fmt.Sprintf("unexpected status %d for %s", resp.StatusCode, pageURL), tool.CodeHTTP)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, tool.NewToolError(toolName, fmt.Sprintf("read response: %v", err), tool.CodeHTTP)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, tool.NewToolError(toolName, fmt.Sprintf("parse HTML: %v", err), tool.CodeParse)
	}

	return doc, nil
}
