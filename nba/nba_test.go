package nba

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/hupe1980/courtscout/tool"
)

func TestResolveTeam(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"Los Angeles Lakers", "LAL"},
		{"lakers", "LAL"},
		{"LAL", "LAL"},
		{"lal", "LAL"},
		{"Boston Celtics", "BOS"},
		{"celtics", "BOS"},
		{"Brooklyn Nets", "BRK"},
		{"Phoenix Suns", "PHO"},
		{"Charlotte Hornets", "CHO"},
		{"the Golden State Warriors", "GSW"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ResolveTeam(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTeamAmbiguous(t *testing.T) {
	// Both Los Angeles franchises match; resolution must reject the
	// reference identically on every call instead of picking one.
	for i := 0; i < 50; i++ {
		_, err := ResolveTeam("los angeles")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
		assert.Contains(t, err.Error(), "LAC")
		assert.Contains(t, err.Error(), "LAL")
	}
}

func TestResolveTeamUnknown(t *testing.T) {
	_, err := ResolveTeam("Harlem Globetrotters")
	assert.Error(t, err)

	_, err = ResolveTeam("  ")
	assert.Error(t, err)
}

func TestSeasonYear(t *testing.T) {
	assert.Equal(t, 2026, SeasonYear(time.Date(2025, time.October, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2026, SeasonYear(time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2026, SeasonYear(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2027, SeasonYear(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

const rosterTableHTML = `
<table id="roster">
  <thead>
    <tr><th>No.</th><th>Player</th><th>Pos</th><th>Ht</th><th>Wt</th><th>Birth Date</th><th>Exp</th><th>College</th></tr>
  </thead>
  <tbody>
    <tr><td>23</td><td>LeBron James</td><td>SF</td><td>6-9</td><td>250</td><td>December 30, 1984</td><td>21</td><td>none</td></tr>
    <tr><td>3</td><td>Anthony Davis</td><td>C</td><td>6-10</td><td>253</td><td>March 11, 1993</td><td>12</td><td>Kentucky</td></tr>
  </tbody>
</table>`

const perGameTableHTML = `
<table id="per_game_stats">
  <thead>
    <tr><th colspan="4">Totals</th></tr>
    <tr><th>Rk</th><th>Player</th><th>G</th><th>MP</th><th>FG%</th><th>3P%</th><th>TRB</th><th>AST</th><th>PTS</th></tr>
  </thead>
  <tbody>
    <tr><td>1</td><td>LeBron James</td><td>70</td><td>35.1</td><td>.540</td><td>.410</td><td>7.3</td><td>8.2</td><td>25.4</td></tr>
  </tbody>
</table>`

func TestParseTableKeepsLastHeaderRow(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(perGameTableHTML))
	require.NoError(t, err)

	tbl := findTableByID(doc, "per_game_stats")
	require.NotNil(t, tbl)
	assert.Equal(t, []string{"Rk", "Player", "G", "MP", "FG%", "3P%", "TRB", "AST", "PTS"}, tbl.headers)
	require.Len(t, tbl.rows, 1)
	assert.Equal(t, "LeBron James", tbl.rows[0][1])
}

func TestFindTableInsideComment(t *testing.T) {
	page := fmt.Sprintf("<html><body><div><!-- %s --></div></body></html>", perGameTableHTML)
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)

	tbl := findTableByID(doc, "per_game_stats")
	require.NotNil(t, tbl, "tables hidden in comment nodes must still be found")
	assert.Len(t, tbl.rows, 1)
}

func TestTableRenderSelectsColumns(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(rosterTableHTML))
	require.NoError(t, err)

	tbl := findTableByID(doc, "roster")
	require.NotNil(t, tbl)

	out := tbl.render(10, []string{"Player", "Pos"})
	assert.Contains(t, out, "Player | Pos")
	assert.Contains(t, out, "LeBron James | SF")
	assert.NotContains(t, out, "Kentucky")
}

func TestTableRenderLimitsRows(t *testing.T) {
	tbl := &table{
		headers: []string{"Player"},
		rows:    [][]string{{"a"}, {"b"}, {"c"}},
	}

	out := tbl.render(2, nil)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.NotContains(t, out, "c")
}

func TestStatsToolFetchesRosterAndPerGame(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, "<html><body>%s<!-- %s --></body></html>", rosterTableHTML, perGameTableHTML)
	}))
	defer srv.Close()

	st := NewStatsTool(func(o *StatsToolOptions) {
		o.BaseURL = srv.URL
		o.HTTPClient = srv.Client()
		o.Now = func() time.Time { return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC) }
	})

	out, err := st.Call(context.Background(), map[string]any{"team": "Lakers"})
	require.NoError(t, err)

	assert.Equal(t, "/teams/LAL/2026.html", gotPath)
	assert.Contains(t, out, "Roster:")
	assert.Contains(t, out, "LeBron James")
	assert.Contains(t, out, "Per-game player stats:")
	assert.Contains(t, out, "25.4")
}

func TestStatsToolValidation(t *testing.T) {
	st := NewStatsTool()

	_, err := st.Call(context.Background(), map[string]any{})
	var toolErr *tool.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.CodeValidation, toolErr.Code)

	_, err = st.Call(context.Background(), map[string]any{"team": "Springfield Atoms"})
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.CodeValidation, toolErr.Code)
}

func TestStatsToolNoTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer srv.Close()

	st := NewStatsTool(func(o *StatsToolOptions) {
		o.BaseURL = srv.URL
		o.HTTPClient = srv.Client()
	})

	_, err := st.Call(context.Background(), map[string]any{"team": "BOS"})
	var toolErr *tool.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.CodeParse, toolErr.Code)
}

func TestStatsToolHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	st := NewStatsTool(func(o *StatsToolOptions) {
		o.BaseURL = srv.URL
		o.HTTPClient = srv.Client()
	})

	_, err := st.Call(context.Background(), map[string]any{"team": "BOS"})
	var toolErr *tool.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.CodeHTTP, toolErr.Code)
}

const injuriesTableHTML = `
<table id="injuries">
  <thead>
    <tr><th>Player</th><th>Team</th><th>Update</th><th>Description</th></tr>
  </thead>
  <tbody>
    <tr><td>Anthony Davis</td><td>Los Angeles Lakers</td><td>Fri, Jan 16, 2026</td><td>Day To Day (ankle)</td></tr>
    <tr><td>Jayson Tatum</td><td>Boston Celtics</td><td>Thu, Jan 15, 2026</td><td>Out (knee)</td></tr>
  </tbody>
</table>`

func newInjuriesFixture(t *testing.T) (*InjuriesTool, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/friv/injuries.fcgi", r.URL.Path)
		fmt.Fprintf(w, "<html><body>%s</body></html>", injuriesTableHTML)
	}))

	it := NewInjuriesTool(func(o *InjuriesToolOptions) {
		o.BaseURL = srv.URL
		o.HTTPClient = srv.Client()
	})

	return it, srv
}

func TestInjuriesToolFullReport(t *testing.T) {
	it, srv := newInjuriesFixture(t)
	defer srv.Close()

	out, err := it.Call(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out, "Anthony Davis")
	assert.Contains(t, out, "Jayson Tatum")
}

func TestInjuriesToolFilter(t *testing.T) {
	it, srv := newInjuriesFixture(t)
	defer srv.Close()

	out, err := it.Call(context.Background(), map[string]any{"filter": "Celtics"})
	require.NoError(t, err)
	assert.Contains(t, out, "Jayson Tatum")
	assert.NotContains(t, out, "Anthony Davis")
}

func TestInjuriesToolFilterNoMatch(t *testing.T) {
	it, srv := newInjuriesFixture(t)
	defer srv.Close()

	out, err := it.Call(context.Background(), map[string]any{"filter": "Wembanyama"})
	require.NoError(t, err)
	assert.Equal(t, `No current injuries reported matching "wembanyama".`, out)
}

func TestRoutesOrderAndNames(t *testing.T) {
	routes := Routes()
	require.Len(t, routes, 7)

	names := make([]string, 0, len(routes))
	for _, r := range routes {
		names = append(names, r.Name)
		assert.NotEmpty(t, r.Utterances, "route %s must carry utterances", r.Name)
	}

	assert.Equal(t, []string{
		RouteInjuries, RouteGeneral, RouteMarket, RouteExpert,
		RouteTeamPerformance, RouteAdvisor, RouteStats,
	}, names)
}

func TestProfilesCoverAllRoutes(t *testing.T) {
	ts := NewToolset()
	profiles := Profiles(ts)

	for _, r := range Routes() {
		p, ok := profiles[r.Name]
		require.True(t, ok, "route %s needs a profile", r.Name)
		require.NoError(t, p.Validate())
		assert.NotEmpty(t, p.Capabilities)
	}

	assert.Len(t, profiles, 7)
}

func TestProfilesCapabilityWiring(t *testing.T) {
	ts := NewToolset()
	profiles := Profiles(ts)

	statsNames := toolNames(profiles[RouteStats].Capabilities)
	assert.Equal(t, []string{"web_search", "site_search", "fetch_nba_stats"}, statsNames)

	injuryNames := toolNames(profiles[RouteInjuries].Capabilities)
	assert.Equal(t, []string{"web_search", "site_search", "fetch_nba_injuries"}, injuryNames)

	generalNames := toolNames(profiles[RouteGeneral].Capabilities)
	assert.Equal(t, []string{"web_search", "site_search"}, generalNames)
}

func toolNames(tools []tool.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, tl := range tools {
		names = append(names, tl.Name())
	}
	return names
}

func TestNewRouteRegistry(t *testing.T) {
	reg, err := NewRouteRegistry()
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())
}

func TestNewWorkerRegistry(t *testing.T) {
	reg, err := NewWorkerRegistry(NewToolset())
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())

	routeReg, err := NewRouteRegistry()
	require.NoError(t, err)
	assert.NoError(t, reg.Validate(routeReg.Names()))
}
