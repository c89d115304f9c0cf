package nba

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// teamAbbreviations maps franchise names to basketball-reference team codes.
// Keys are lowercased; ResolveTeam matches on substrings so "Lakers",
// "LA Lakers" and "Los Angeles Lakers" all resolve to LAL.
var teamAbbreviations = map[string]string{
	"atlanta hawks":          "ATL",
	"boston celtics":         "BOS",
	"brooklyn nets":          "BRK",
	"charlotte hornets":      "CHO",
	"chicago bulls":          "CHI",
	"cleveland cavaliers":    "CLE",
	"dallas mavericks":       "DAL",
	"denver nuggets":         "DEN",
	"detroit pistons":        "DET",
	"golden state warriors":  "GSW",
	"houston rockets":        "HOU",
	"indiana pacers":         "IND",
	"los angeles clippers":   "LAC",
	"los angeles lakers":     "LAL",
	"memphis grizzlies":      "MEM",
	"miami heat":             "MIA",
	"milwaukee bucks":        "MIL",
	"minnesota timberwolves": "MIN",
	"new orleans pelicans":   "NOP",
	"new york knicks":        "NYK",
	"oklahoma city thunder":  "OKC",
	"orlando magic":          "ORL",
	"philadelphia 76ers":     "PHI",
	"phoenix suns":           "PHO",
	"portland trail blazers": "POR",
	"sacramento kings":       "SAC",
	"san antonio spurs":      "SAS",
	"toronto raptors":        "TOR",
	"utah jazz":              "UTA",
	"washington wizards":     "WAS",
}

// validAbbreviations is the reverse index used to accept codes directly.
var validAbbreviations = func() map[string]struct{} {
	m := make(map[string]struct{}, len(teamAbbreviations))
	for _, abbr := range teamAbbreviations {
		m[abbr] = struct{}{}
	}
	return m
}()

// teamNames holds the franchise names in sorted order so name matching is
// deterministic across processes.
var teamNames = func() []string {
	names := make([]string, 0, len(teamAbbreviations))
	for name := range teamAbbreviations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// ResolveTeam maps a free-form team reference (full name, nickname or
// abbreviation) to a basketball-reference team code. A reference matching
// more than one franchise ("los angeles") is an error rather than an
// arbitrary pick.
func ResolveTeam(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", fmt.Errorf("team reference must not be empty")
	}

	if upper := strings.ToUpper(trimmed); len(upper) == 3 {
		if _, ok := validAbbreviations[upper]; ok {
			return upper, nil
		}
	}

	lower := strings.ToLower(trimmed)
	var matches []string
	for _, name := range teamNames {
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			matches = append(matches, teamAbbreviations[name])
		}
	}

	// Nickname-only references ("Lakers") match the tail of the full name.
	if len(matches) == 0 {
		for _, name := range teamNames {
			parts := strings.Fields(name)
			if strings.EqualFold(parts[len(parts)-1], lower) {
				matches = append(matches, teamAbbreviations[name])
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown team %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous team %q matches %s", ref, strings.Join(matches, ", "))
	}
}

// SeasonYear returns the basketball-reference season identifier (the calendar
// year the season ends in) for the given moment. Seasons tip off in October.
func SeasonYear(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year() + 1
	}
	return now.Year()
}
