// Package source defines the capability every upstream news adapter provides
// and the registry that keeps them in a stable order.
package source

import (
	"context"
	"errors"
	"fmt"

	"CommodityNews/internal/domain"
)

// ErrNotRegistered is returned by Resolve for unknown source names.
var ErrNotRegistered = errors.New("source is not registered")

// Query carries the arguments passed unchanged to every adapter of a fan-out.
type Query struct {
	Text      string
	Country   string
	Commodity string
	Limit     int
}

// Adapter fetches normalized articles from a single upstream.
// Implementations fall back to representative records when their upstream is
// not configured and never return partially built articles.
type Adapter interface {
	Name() string
	Description() string
	// Topics lists the coverage areas shown in the source catalogue.
	Topics() []string
	Fetch(ctx context.Context, q Query) ([]domain.Article, error)
}

// Registry keeps adapters keyed by name in registration order.
type Registry struct {
	order    []string
	adapters map[string]Adapter
}

// NewRegistry builds a registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: map[string]Adapter{}}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an adapter. A replaced adapter keeps its position.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[string]Adapter{}
	}
	name := adapter.Name()
	if _, ok := r.adapters[name]; !ok {
		r.order = append(r.order, name)
	}
	r.adapters[name] = adapter
}

// Resolve returns an adapter by name.
func (r *Registry) Resolve(name string) (Adapter, error) {
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
}

// Names lists registered source names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Adapters lists registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}

// Len reports how many adapters are registered.
func (r *Registry) Len() int {
	return len(r.order)
}
