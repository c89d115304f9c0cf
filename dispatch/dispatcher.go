// Package dispatch wires the classification and execution halves together:
// it validates the incoming request, classifies it into a route, resolves the
// route's worker profile, composes the task description and runs the
// completion engine with the worker's capabilities.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/courtscout/core"
	"github.com/hupe1980/courtscout/engine"
	"github.com/hupe1980/courtscout/internal/util"
	"github.com/hupe1980/courtscout/logging"
	"github.com/hupe1980/courtscout/route"
	"github.com/hupe1980/courtscout/worker"
)

// qualityDirectives are appended to every composed task. They push the engine
// toward tool-grounded, current and concise answers regardless of which
// worker handles the request.
const qualityDirectives = "Remember to use your available tools to gather new information, and base your analysis on current and factual data. Keep your answers concise and clear while including all the facts. You are researching for an upcoming game that will happen in the future."

// Config carries the explicit collaborators of a Dispatcher. All dependencies
// are injected; the dispatcher holds no hidden global state.
type Config struct {
	// Router classifies requests into routes.
	Router *route.Router
	// Workers resolves route names to worker profiles.
	Workers *worker.Registry
	// Engine executes the composed task.
	Engine engine.Engine
	// Logger receives per-request diagnostics. Defaults to NoOp.
	Logger logging.Logger
	// Now supplies the clock stamped into every task description.
	// Defaults to time.Now.
	Now func() time.Time
}

// Dispatcher executes research requests end to end. It is stateless across
// requests and safe for concurrent use.
type Dispatcher struct {
	router  *route.Router
	workers *worker.Registry
	engine  engine.Engine
	logger  logging.Logger
	now     func() time.Time
}

// New creates a Dispatcher from the given config.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Router == nil {
		return nil, fmt.Errorf("dispatch: router must not be nil")
	}
	if cfg.Workers == nil {
		return nil, fmt.Errorf("dispatch: worker registry must not be nil")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("dispatch: engine must not be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NoOpLogger{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Dispatcher{
		router:  cfg.Router,
		workers: cfg.Workers,
		engine:  cfg.Engine,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}, nil
}

// Dispatch classifies the request, resolves the matching worker and runs the
// engine. The returned string is the worker's final research result.
//
// Failure classes map to the core error taxonomy: an empty request is an
// InvalidRequestError raised before any encoder call, a request below the
// confidence threshold is an UnroutableRequestError carrying the best score
// seen, and any collaborator failure after classification surfaces as an
// ExecutionError wrapping the cause.
func (d *Dispatcher) Dispatch(ctx context.Context, request string) (string, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return "", &core.InvalidRequestError{Reason: "request must not be empty"}
	}

	requestID := util.NewID()
	start := d.now()

	d.logger.Debug("dispatch.start", "request_id", requestID)

	match, err := d.router.Classify(ctx, request)
	if err != nil {
		return "", &core.ExecutionError{RequestID: requestID, Err: err}
	}

	if !match.Matched() {
		d.logger.Info("dispatch.unroutable", "request_id", requestID, "best_score", match.Score)
		return "", &core.UnroutableRequestError{Best: match}
	}

	profile, err := d.workers.Resolve(match.Route)
	if err != nil {
		return "", err
	}

	task, err := d.composeTask(profile, request)
	if err != nil {
		return "", &core.ExecutionError{RequestID: requestID, Route: match.Route, Err: err}
	}

	d.logger.Info("dispatch.routed", "request_id", requestID, "route", match.Route, "score", match.Score, "worker", profile.Role)

	result, err := d.engine.Run(ctx, engine.RunSpec{
		Role:      profile.Role,
		Goal:      profile.Goal,
		Backstory: profile.Backstory,
		Task:      task,
		Tools:     profile.Capabilities,
	})
	if err != nil {
		d.logger.Error("dispatch.failed", "request_id", requestID, "route", match.Route, "error", err)
		return "", &core.ExecutionError{RequestID: requestID, Route: match.Route, Err: err}
	}

	d.logger.Info("dispatch.done", "request_id", requestID, "route", match.Route, "duration", d.now().Sub(start).String())

	return result, nil
}

// composeTask renders the worker's task template and appends the request,
// the quality directives and the dispatch-time date. Templates that already
// embed the request (via placeholder or provider) skip the appended copy;
// the decision comes from the template declaration, not from scanning the
// resolved text, so a request that coincidentally appears in static template
// wording is still appended.
func (d *Dispatcher) composeTask(p *worker.Profile, request string) (string, error) {
	base, err := p.Template.Resolve(request)
	if err != nil {
		return "", fmt.Errorf("resolve task template: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(base))
	if !p.Template.EmbedsRequest() {
		sb.WriteString(": ")
		sb.WriteString(request)
		sb.WriteString(".")
	}
	sb.WriteString(" ")
	sb.WriteString(qualityDirectives)
	sb.WriteString(fmt.Sprintf(" Today's date is %s", d.now().Format("2006-01-02")))

	return sb.String(), nil
}
