package livedata

import (
	"sync"

	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// Resolver maps market data specifications to registered providers by name.
// The empty provider name resolves to the default.
type Resolver struct {
	mu        sync.RWMutex
	providers map[string]ports.MarketDataProvider
	def       ports.MarketDataProvider
}

var _ ports.MarketDataProviderResolver = (*Resolver)(nil)

// NewResolver creates a resolver with the given default provider.
func NewResolver(def ports.MarketDataProvider) *Resolver {
	return &Resolver{
		providers: make(map[string]ports.MarketDataProvider),
		def:       def,
	}
}

// Register adds a named provider, replacing any previous registration.
func (r *Resolver) Register(name string, p ports.MarketDataProvider) {
	r.mu.Lock()
	r.providers[name] = p
	r.mu.Unlock()
}

// Resolve returns the provider for the specification.
func (r *Resolver) Resolve(spec domain.MarketDataSpec) (ports.MarketDataProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if spec.Provider == "" {
		if r.def == nil {
			return nil, domain.ErrUnknownProvider
		}
		return r.def, nil
	}
	p, ok := r.providers[spec.Provider]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, "resolving market data spec"), "provider", spec.Provider)
	}
	return p, nil
}
