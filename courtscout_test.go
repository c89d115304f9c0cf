package courtscout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/courtscout/core"
	"github.com/hupe1980/courtscout/engine"
	"github.com/hupe1980/courtscout/nba"
	"github.com/hupe1980/courtscout/route"
	"github.com/hupe1980/courtscout/worker"
)

// echoEncoder gives identical texts identical vectors and unrelated texts
// near-orthogonal ones, enough to exercise the default taxonomy offline.
func echoEncoder() core.Encoder {
	return core.EncoderFunc(func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, 64)
		for i := 0; i < len(text); i++ {
			vec[int(text[i])%64]++
		}
		return vec, nil
	})
}

func TestNewWithDefaults(t *testing.T) {
	cs, err := New(echoEncoder(), engine.NewMockEngine())
	require.NoError(t, err)

	assert.Equal(t, []string{
		nba.RouteInjuries, nba.RouteGeneral, nba.RouteMarket, nba.RouteExpert,
		nba.RouteTeamPerformance, nba.RouteAdvisor, nba.RouteStats,
	}, cs.RouteNames())
}

func TestNewRequiresEncoderAndEngine(t *testing.T) {
	_, err := New(nil, engine.NewMockEngine())
	assert.Error(t, err)

	_, err = New(echoEncoder(), nil)
	assert.Error(t, err)
}

func TestNewRejectsUncoveredRoute(t *testing.T) {
	routes := route.NewRegistry()
	require.NoError(t, routes.Register(route.MustNew("stats", "team roster")))
	require.NoError(t, routes.Register(route.MustNew("orphan", "no worker here")))

	workers := worker.NewRegistry()
	require.NoError(t, workers.Register("stats", &worker.Profile{Role: "r", Goal: "g"}))

	_, err := New(echoEncoder(), engine.NewMockEngine(), func(o *Options) {
		o.Routes = routes
		o.Workers = workers
	})

	var unknownErr *core.UnknownRouteError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "orphan", unknownErr.Name)
}

func TestResearchExactUtterance(t *testing.T) {
	eng := engine.NewMockEngine()
	cs, err := New(echoEncoder(), eng)
	require.NoError(t, err)

	out, err := cs.Research(context.Background(), "player injury updates")
	require.NoError(t, err)
	assert.Contains(t, out, "Mock research result for:")

	runs := eng.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "NBA Injury Researcher", runs[0].Role)
}

func TestClassify(t *testing.T) {
	cs, err := New(echoEncoder(), engine.NewMockEngine())
	require.NoError(t, err)

	match, err := cs.Classify(context.Background(), "NBA betting odds")
	require.NoError(t, err)
	assert.Equal(t, nba.RouteMarket, match.Route)
	assert.InDelta(t, 1.0, match.Score, 1e-6)
}

func TestWarmOption(t *testing.T) {
	cs, err := New(echoEncoder(), engine.NewMockEngine(), func(o *Options) {
		o.Warm = true
	})
	require.NoError(t, err)
	assert.NotNil(t, cs)
}
