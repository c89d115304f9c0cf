package nba

import "github.com/hupe1980/courtscout/route"

// Route names of the default NBA research taxonomy.
const (
	RouteInjuries        = "injuries"
	RouteGeneral         = "general"
	RouteMarket          = "market"
	RouteExpert          = "expert"
	RouteTeamPerformance = "team_performance"
	RouteAdvisor         = "advisor"
	RouteStats           = "stats"
)

// Routes returns the default NBA intent taxonomy in its canonical
// registration order. The order is significant: when two routes score
// identically for a request, the earlier registration wins, and the injury
// route deliberately comes first because injury questions overlap heavily
// with stats and team-performance phrasing.
//
// Bracketed placeholders such as "[player name]" are part of the utterance
// text on purpose. They act as generic slot markers and embed close to real
// requests that mention concrete players or teams.
func Routes() []*route.Route {
	return []*route.Route{
		route.MustNew(RouteInjuries,
			"player injury updates",
			"team injury report",
			"injury status of [player name]",
			"[team name] injury list",
			"update on [player name]'s recovery",
		),
		route.MustNew(RouteGeneral,
			"season highlights",
			"game recaps",
			"upcoming NBA matchups",
			"notable NBA news",
			"recent trends in NBA",
		),
		route.MustNew(RouteMarket,
			"betting line movements",
			"NBA betting odds",
			"betting trends in NBA",
		),
		route.MustNew(RouteExpert,
			"expert NBA predictions",
			"NBA game analysis",
			"NBA match forecasts",
		),
		route.MustNew(RouteTeamPerformance,
			"team recent performance in NBA",
			"team winning streaks in NBA",
			"detailed team game analysis",
			"offensive and defensive ratings of [team name]",
			"player performance statistics of [team name] in recent games",
		),
		route.MustNew(RouteAdvisor,
			"betting advice for NBA games",
			"NBA betting strategy",
			"sports betting tips for NBA",
		),
		route.MustNew(RouteStats,
			"team statistics",
			"individual player stats",
			"season averages for players",
			"NBA player scoring leaders",
			"NBA rebounding statistics",
			"roster",
			"team roster",
			"rosters",
			"current NBA standings",
			"current roster of",
			"research the current roster and provide a list of their starters",
			"update me on the current roster of the",
		),
	}
}

// NewRouteRegistry builds a route registry preloaded with the default
// taxonomy.
func NewRouteRegistry() (*route.Registry, error) {
	reg := route.NewRegistry()
	for _, r := range Routes() {
		if err := reg.Register(r); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
