package nba

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/courtscout/logging"
	"github.com/hupe1980/courtscout/tool"
)

// InjuriesToolOptions configures the injury-report fetch capability.
type InjuriesToolOptions struct {
	// BaseURL is the basketball-reference root. Overridable for tests.
	BaseURL string
	// HTTPClient performs the requests.
	HTTPClient *http.Client
	// Logger receives per-fetch diagnostics.
	Logger logging.Logger
}

// InjuriesTool fetches the league-wide injury report from
// basketball-reference.com and optionally filters it to a player or team.
type InjuriesTool struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewInjuriesTool creates the injury-report fetch capability.
func NewInjuriesTool(optFns ...func(o *InjuriesToolOptions)) *InjuriesTool {
	opts := InjuriesToolOptions{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &InjuriesTool{baseURL: opts.BaseURL, client: opts.HTTPClient, logger: opts.Logger}
}

// Name implements tool.Tool.
func (t *InjuriesTool) Name() string { return injuriesToolName }

// Description implements tool.Tool.
func (t *InjuriesTool) Description() string {
	return "Fetch the latest NBA injury report, optionally filtered to a player or team"
}

// Parameters implements tool.Tool.
func (t *InjuriesTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"filter": map[string]any{
				"type":        "string",
				"description": "Player or team name to filter the report by. Optional; omit for the full league report.",
			},
		},
	}
}

// Call implements tool.Tool.
func (t *InjuriesTool) Call(ctx context.Context, args map[string]any) (string, error) {
	filter, _ := args["filter"].(string)
	filter = strings.ToLower(strings.TrimSpace(filter))

	pageURL := t.baseURL + "/friv/injuries.fcgi"

	t.logger.Debug("injuries.fetch", "url", pageURL, "filter", filter)

	doc, err := fetchDocument(ctx, t.client, t.Name(), pageURL)
	if err != nil {
		return "", err
	}

	tbl := findTableByID(doc, "injuries")
	if tbl == nil || len(tbl.rows) == 0 {
		return "", tool.NewToolError(t.Name(), "no injuries table found", tool.CodeParse)
	}

	var sb strings.Builder
	sb.WriteString("NBA injury report (from basketball-reference.com):\n")

	var matched int
	for _, row := range tbl.rows {
		line := strings.Join(row, " | ")
		if filter != "" && !strings.Contains(strings.ToLower(line), filter) {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		matched++
	}

	if matched == 0 {
		return fmt.Sprintf("No current injuries reported matching %q.", filter), nil
	}

	t.logger.Info("injuries.fetched", "entries", matched, "filter", filter)

	return sb.String(), nil
}
