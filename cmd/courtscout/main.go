// Command courtscout routes free-text NBA research requests to specialized
// workers and prints the research result.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/courtscout"
	"github.com/hupe1980/courtscout/config"
	"github.com/hupe1980/courtscout/core"
	"github.com/hupe1980/courtscout/encoder"
	openaienc "github.com/hupe1980/courtscout/encoder/openai"
	"github.com/hupe1980/courtscout/engine"
	anthropicengine "github.com/hupe1980/courtscout/engine/anthropic"
	openaiengine "github.com/hupe1980/courtscout/engine/openai"
	"github.com/hupe1980/courtscout/logging"
	"github.com/hupe1980/courtscout/nba"
	"github.com/hupe1980/courtscout/route"
	"github.com/hupe1980/courtscout/tool"
	"github.com/hupe1980/courtscout/worker"
)

var (
	flagProvider   string
	flagModel      string
	flagThreshold  float64
	flagConfigPath string
	flagTimeout    time.Duration
	flagVerbose    bool
	flagClassify   bool
)

var rootCmd = &cobra.Command{
	Use:   "courtscout",
	Short: "CourtScout - natural-language NBA research routing",
	Long: `CourtScout classifies free-text NBA research requests into intent
routes (stats, injuries, betting market, expert opinions, ...) and hands each
request to a specialized research worker backed by a completion engine.`,
}

var researchCmd = &cobra.Command{
	Use:   "research [request]",
	Short: "Route a research request and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := strings.Join(args, " ")

		logger := logging.Logger(logging.NoOpLogger{})
		if flagVerbose {
			logger = logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
		}

		enc, err := buildEncoder()
		if err != nil {
			return err
		}

		eng, err := buildEngine()
		if err != nil {
			return err
		}

		opts := []func(o *courtscout.Options){
			func(o *courtscout.Options) {
				o.Threshold = flagThreshold
				o.Logger = logger
			},
		}

		if flagConfigPath != "" {
			routes, workers, err := loadConfigured(flagConfigPath)
			if err != nil {
				return err
			}
			opts = append(opts, func(o *courtscout.Options) {
				o.Routes = routes
				o.Workers = workers
			})
		}

		cs, err := courtscout.New(enc, eng, opts...)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()

		if flagClassify {
			match, err := cs.Classify(ctx, request)
			if err != nil {
				return err
			}
			if !match.Matched() {
				fmt.Printf("no match (best score %.3f)\n", match.Score)
				return nil
			}
			fmt.Printf("route=%s score=%.3f\n", match.Route, match.Score)
			return nil
		}

		result, err := cs.Research(ctx, request)
		if err != nil {
			return err
		}

		fmt.Println(result)
		return nil
	},
}

func buildEncoder() (core.Encoder, error) {
	enc := openaienc.NewEncoder()
	return encoder.NewCachedEncoder(enc)
}

func buildEngine() (engine.Engine, error) {
	switch flagProvider {
	case "openai":
		return openaiengine.NewEngine(func(o *openaiengine.Options) {
			if flagModel != "" {
				o.Model = flagModel
			}
		}), nil
	case "anthropic":
		return anthropicengine.NewEngine(func(o *anthropicengine.Options) {
			if flagModel != "" {
				o.Model = anthropic.Model(flagModel)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or anthropic)", flagProvider)
	}
}

// loadConfigured builds registries from a YAML file, resolving capability
// names against the default toolset.
func loadConfigured(path string) (*route.Registry, *worker.Registry, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if f.Threshold > 0 {
		flagThreshold = f.Threshold
	}

	ts := nba.NewToolset()
	tools := map[string]tool.Tool{
		ts.Search.Name():     ts.Search,
		ts.SiteSearch.Name(): ts.SiteSearch,
		ts.Stats.Name():      ts.Stats,
		ts.Injuries.Name():   ts.Injuries,
	}

	return f.Build(tools)
}

func init() {
	researchCmd.Flags().StringVar(&flagProvider, "provider", "openai", "completion engine provider (openai|anthropic)")
	researchCmd.Flags().StringVar(&flagModel, "model", "", "override the provider's default model")
	researchCmd.Flags().Float64Var(&flagThreshold, "threshold", route.DefaultThreshold, "minimum classification confidence")
	researchCmd.Flags().StringVar(&flagConfigPath, "config", "", "YAML taxonomy/profile configuration file")
	researchCmd.Flags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "overall request timeout")
	researchCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	researchCmd.Flags().BoolVar(&flagClassify, "classify", false, "print the routing decision without running a worker")

	rootCmd.AddCommand(researchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
