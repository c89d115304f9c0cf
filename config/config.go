// Package config loads route taxonomies and worker profiles from YAML. It
// exists for deployments that tune utterances or personas without
// recompiling; the compiled-in NBA defaults remain the primary path.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/courtscout/route"
	"github.com/hupe1980/courtscout/tool"
	"github.com/hupe1980/courtscout/worker"
)

// RouteConfig declares one route of the taxonomy. Order in the YAML list is
// registration order and therefore the tie-break order.
type RouteConfig struct {
	Name       string   `yaml:"name"`
	Utterances []string `yaml:"utterances"`
}

// WorkerConfig declares the worker profile bound to a route.
type WorkerConfig struct {
	Role         string   `yaml:"role"`
	Goal         string   `yaml:"goal"`
	Backstory    string   `yaml:"backstory"`
	Template     string   `yaml:"template"`
	Capabilities []string `yaml:"capabilities"`
}

// File is the root of the YAML configuration document.
type File struct {
	// Threshold overrides the default confidence threshold when > 0.
	Threshold float64 `yaml:"threshold"`
	// Routes lists the taxonomy in registration order.
	Routes []RouteConfig `yaml:"routes"`
	// Workers maps route names to worker profiles.
	Workers map[string]WorkerConfig `yaml:"workers"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML configuration bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(f.Routes) == 0 {
		return nil, fmt.Errorf("config declares no routes")
	}
	for _, r := range f.Routes {
		if r.Name == "" {
			return nil, fmt.Errorf("config route with empty name")
		}
		if len(r.Utterances) == 0 {
			return nil, fmt.Errorf("config route %q has no utterances", r.Name)
		}
	}

	return &f, nil
}

// Build materializes the configuration into populated route and worker
// registries. The tools map resolves capability names declared in the YAML
// to concrete instances; an unknown name is a configuration error.
func (f *File) Build(tools map[string]tool.Tool) (*route.Registry, *worker.Registry, error) {
	routes := route.NewRegistry()
	for _, rc := range f.Routes {
		r, err := route.New(rc.Name, rc.Utterances...)
		if err != nil {
			return nil, nil, err
		}
		if err := routes.Register(r); err != nil {
			return nil, nil, err
		}
	}

	workers := worker.NewRegistry()
	for name, wc := range f.Workers {
		capabilities := make([]tool.Tool, 0, len(wc.Capabilities))
		for _, capName := range wc.Capabilities {
			t, ok := tools[capName]
			if !ok {
				return nil, nil, fmt.Errorf("worker %q references unknown capability %q", name, capName)
			}
			capabilities = append(capabilities, t)
		}

		p := &worker.Profile{
			Role:         wc.Role,
			Goal:         wc.Goal,
			Backstory:    wc.Backstory,
			Capabilities: capabilities,
			Template:     worker.NewTemplateFromText(wc.Template),
		}
		if err := workers.Register(name, p); err != nil {
			return nil, nil, err
		}
	}

	if err := workers.Validate(routes.Names()); err != nil {
		return nil, nil, err
	}

	return routes, workers, nil
}
