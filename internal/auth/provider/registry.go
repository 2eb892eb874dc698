package provider

import (
	"fmt"

	"github.com/Hanjarang/news/internal/auth"
)

// Registry holds all configured providers and allows lookup by name.
// It performs no auth logic itself.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers by name. Names must be unique.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider)
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider by name, or auth.ErrUnsupportedProvider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", auth.ErrUnsupportedProvider, name)
	}
	return p, nil
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
