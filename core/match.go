package core

// RouteMatch is the transient result of classifying a request. An empty Route
// means no route scored above the confidence threshold; Score still carries
// the best value seen so callers can report it for diagnostics.
type RouteMatch struct {
	Route string  `json:"route"`
	Score float64 `json:"score"`
}

// Matched reports whether classification produced a confident route.
func (m RouteMatch) Matched() bool { return m.Route != "" }
