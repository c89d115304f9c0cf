// Package courtscout provides a high-level façade over the routing and
// dispatch machinery for natural-language NBA research. Most applications
// interact with this package by:
//  1. Creating a CourtScout via New() with an encoder and a completion engine
//  2. Optionally overriding the default taxonomy, profiles or threshold
//  3. Calling Research() with a free-text request
//
// The façade delegates classification to route.Router and execution to
// dispatch.Dispatcher while keeping setup ergonomics concise. Defaults cover
// the full NBA research taxonomy; custom deployments supply their own
// registries, typically built from a YAML file via the config package.
package courtscout

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/courtscout/core"
	"github.com/hupe1980/courtscout/dispatch"
	"github.com/hupe1980/courtscout/engine"
	"github.com/hupe1980/courtscout/logging"
	"github.com/hupe1980/courtscout/nba"
	"github.com/hupe1980/courtscout/route"
	"github.com/hupe1980/courtscout/worker"
)

// Options configures the CourtScout instance.
type Options struct {
	// Routes is the intent taxonomy. Defaults to the NBA taxonomy.
	Routes *route.Registry
	// Workers maps route names to worker profiles. Defaults to the NBA
	// profiles over a fresh default toolset.
	Workers *worker.Registry
	// Threshold is the minimum classification confidence.
	Threshold float64
	// Warm pre-computes all utterance embeddings at construction time,
	// trading startup latency for a fast first request.
	Warm bool
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// Now supplies the clock stamped into task descriptions.
	Now func() time.Time
}

// CourtScout is the high-level façade aggregating router, worker registry and
// dispatcher.
type CourtScout struct {
	dispatcher *dispatch.Dispatcher
	routes     *route.Registry
	router     *route.Router
}

// New creates a CourtScout instance. The encoder and engine are required;
// everything else has NBA defaults. Worker coverage of all registered routes
// is validated here so a configuration gap fails construction instead of a
// request.
func New(enc core.Encoder, eng engine.Engine, optFns ...func(o *Options)) (*CourtScout, error) {
	if enc == nil {
		return nil, fmt.Errorf("courtscout: encoder must not be nil")
	}
	if eng == nil {
		return nil, fmt.Errorf("courtscout: engine must not be nil")
	}

	opts := Options{
		Threshold: route.DefaultThreshold,
		Logger:    logging.NoOpLogger{},
		Now:       time.Now,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Routes == nil {
		routes, err := nba.NewRouteRegistry()
		if err != nil {
			return nil, err
		}
		opts.Routes = routes
	}

	if opts.Workers == nil {
		workers, err := nba.NewWorkerRegistry(nba.NewToolset())
		if err != nil {
			return nil, err
		}
		opts.Workers = workers
	}

	if err := opts.Workers.Validate(opts.Routes.Names()); err != nil {
		return nil, err
	}

	router := route.NewRouter(enc, opts.Routes, func(o *route.RouterOptions) {
		o.Threshold = opts.Threshold
		o.Logger = opts.Logger
	})

	d, err := dispatch.New(dispatch.Config{
		Router:  router,
		Workers: opts.Workers,
		Engine:  eng,
		Logger:  opts.Logger,
		Now:     opts.Now,
	})
	if err != nil {
		return nil, err
	}

	cs := &CourtScout{dispatcher: d, routes: opts.Routes, router: router}

	if opts.Warm {
		if err := opts.Routes.Warm(context.Background(), enc); err != nil {
			return nil, err
		}
	}

	return cs, nil
}

// Research classifies the request, hands it to the matching worker and
// returns the research result.
func (cs *CourtScout) Research(ctx context.Context, request string) (string, error) {
	return cs.dispatcher.Dispatch(ctx, request)
}

// Classify exposes the routing decision without running a worker. Useful for
// diagnostics and threshold tuning.
func (cs *CourtScout) Classify(ctx context.Context, request string) (core.RouteMatch, error) {
	return cs.router.Classify(ctx, request)
}

// RouteNames returns the registered route names in registration order.
func (cs *CourtScout) RouteNames() []string { return cs.routes.Names() }
