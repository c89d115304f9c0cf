package route

import (
	"context"

	"github.com/hupe1980/courtscout/core"
	"github.com/hupe1980/courtscout/logging"
)

// DefaultThreshold is the minimum per-route similarity a request must reach
// to be considered a confident match. Below it the router reports "no match"
// rather than forcing off-domain queries into an unrelated worker.
const DefaultThreshold = 0.75

// RouterOptions configures a Router instance.
type RouterOptions struct {
	// Threshold is the minimum confidence score for a match.
	Threshold float64
	// Logger receives classification diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Router classifies a request string into exactly one route name, or declares
// that no route matches confidently. Classification is deterministic: a given
// request always yields the same RouteMatch for a deterministic encoder.
type Router struct {
	enc       core.Encoder
	reg       *Registry
	threshold float64
	logger    logging.Logger
}

// NewRouter creates a Router over the given registry and encoder.
func NewRouter(enc core.Encoder, reg *Registry, optFns ...func(o *RouterOptions)) *Router {
	opts := RouterOptions{
		Threshold: DefaultThreshold,
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Router{enc: enc, reg: reg, threshold: opts.Threshold, logger: opts.Logger}
}

// Threshold returns the configured minimum confidence score.
func (rt *Router) Threshold() float64 { return rt.threshold }

// Classify embeds the request and scores it against every route. Each route's
// score is the maximum similarity between the request vector and any of that
// route's utterance vectors: a route matches if the request resembles any of
// its known phrasings, not all of them.
//
// Selection keeps the earliest-registered route on identical scores. A best
// score below the threshold yields an unmatched RouteMatch carrying the score
// for diagnostics; that outcome is normal and distinct from an encoder error.
func (rt *Router) Classify(ctx context.Context, request string) (core.RouteMatch, error) {
	vec, err := rt.enc.Encode(ctx, request)
	if err != nil {
		if _, ok := err.(*core.EncodingError); ok {
			return core.RouteMatch{}, err
		}
		return core.RouteMatch{}, &core.EncodingError{Text: request, Err: err}
	}
	mag := magnitude(vec)

	var (
		bestRoute string
		bestScore float64
	)

	for _, r := range rt.reg.Routes() {
		embeddings, magnitudes, err := r.vectors(ctx, rt.enc)
		if err != nil {
			return core.RouteMatch{}, err
		}

		var routeScore float64
		for i, u := range embeddings {
			if s := cosineSimilarity(vec, u, mag, magnitudes[i]); s > routeScore {
				routeScore = s
			}
		}

		rt.logger.Debug("router.route.scored", "route", r.Name, "score", routeScore)

		// Strictly greater keeps the earliest-registered route on ties.
		if routeScore > bestScore {
			bestScore = routeScore
			bestRoute = r.Name
		}
	}

	if bestScore < rt.threshold {
		rt.logger.Info("router.no_match", "best_route", bestRoute, "best_score", bestScore, "threshold", rt.threshold)
		return core.RouteMatch{Score: bestScore}, nil
	}

	rt.logger.Info("router.matched", "route", bestRoute, "score", bestScore)

	return core.RouteMatch{Route: bestRoute, Score: bestScore}, nil
}
