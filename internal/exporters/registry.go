package exporters

import (
	"sort"
	"sync"
)

// Registry maps Unity type names to their exporters.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

// NewRegistry creates a new exporter registry with the given exporters.
// A later exporter for the same type replaces an earlier one.
func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{
		exporters: make(map[string]Exporter, len(exporters)),
	}

	for _, e := range exporters {
		r.Register(e)
	}

	return r
}

// Register adds an exporter to the registry.
func (r *Registry) Register(e Exporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[e.Type()] = e
}

// Get returns the exporter for typeName, or nil if none is registered.
func (r *Registry) Get(typeName string) Exporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exporters[typeName]
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.exporters))
	for t := range r.exporters {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	minTextureSize int
}

// WithMinTextureSize filters out textures whose sides are both below size.
func WithMinTextureSize(size int) RegistryOption {
	return func(c *registryConfig) {
		c.minTextureSize = size
	}
}

// DefaultRegistry creates a registry with all default exporters configured.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return NewRegistry(
		NewTextureExporter(WithMinSize(cfg.minTextureSize)),
		NewSpriteExporter(),
		NewMeshExporter(),
		NewAudioExporter(),
		NewTextExporter(),
		NewFontExporter(),
		NewMonoBehaviourExporter(),
	)
}
