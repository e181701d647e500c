package plugin

import (
	"fmt"
	"strings"
	"sync"
)

// Pipeline dispatches module requests to plugins in registration order.
// The first plugin returning a Transformed result wins.
type Pipeline struct {
	mu      sync.RWMutex
	plugins []Plugin
	names   map[string]struct{}
}

// NewPipeline creates a pipeline and registers the given plugins in order.
func NewPipeline(plugins ...Plugin) (*Pipeline, error) {
	p := &Pipeline{names: make(map[string]struct{})}
	for _, pl := range plugins {
		if err := p.Register(pl); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register appends a plugin to the pipeline.
// Returns an error if the plugin is nil, unnamed, or its name is taken.
func (p *Pipeline) Register(pl Plugin) error {
	if pl == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	name := pl.Name()
	if name == "" {
		return fmt.Errorf("plugin name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.names[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}
	p.names[name] = struct{}{}
	p.plugins = append(p.plugins, pl)
	return nil
}

// Name identifies the pipeline when it is itself used as a Plugin: the
// registered names joined with "+", or "pipeline" while empty.
func (p *Pipeline) Name() string {
	names := p.Names()
	if len(names) == 0 {
		return "pipeline"
	}
	return strings.Join(names, "+")
}

// Transform runs id through the registered plugins until one transforms it.
func (p *Pipeline) Transform(code []byte, id string) (Result, error) {
	p.mu.RLock()
	plugins := p.plugins
	p.mu.RUnlock()

	for _, pl := range plugins {
		res, err := pl.Transform(code, id)
		if err != nil {
			return nil, NewPluginError(pl.Name(), "transform", id, err)
		}
		if _, ok := IsTransformed(res); ok {
			return res, nil
		}
	}
	return NoTransform, nil
}

// Names returns the registered plugin names in order.
func (p *Pipeline) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.plugins))
	for _, pl := range p.plugins {
		out = append(out, pl.Name())
	}
	return out
}

// Len returns the number of registered plugins.
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.plugins)
}
