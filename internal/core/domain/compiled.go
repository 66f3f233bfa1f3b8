package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CacheKey identifies one compilation of a view definition against a market
// data environment. Compilations with equal keys are interchangeable.
type CacheKey struct {
	DefinitionUID UniqueID
	// Availability is a digest of the market data provider's availability
	// signature: two providers with the same digest resolve market data
	// requirements identically.
	Availability uint64
}

// NewCacheKey digests the availability signature into a key.
func NewCacheKey(definition UniqueID, availability string) CacheKey {
	return CacheKey{
		DefinitionUID: definition,
		Availability:  xxhash.Sum64String(availability),
	}
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s@%016x", k.DefinitionUID, k.Availability)
}

// CompiledView is the output of graph compilation: one dependency graph per
// calculation configuration, plus the resolution environment they were built
// in. A compiled view is immutable; incremental recompilation clones before
// mutating.
type CompiledView struct {
	Definition    *ViewDefinition
	Portfolio     *Portfolio
	Graphs        map[string]*DependencyGraph
	CompilationID int64

	// ResolvedIdentifiers records every target reference resolved during
	// compilation and the unique id it resolved to.
	ResolvedIdentifiers map[TargetReference]UniqueID
	// VersionCorrection the compilation resolved against, with latest
	// components fixed to the compile instant.
	VersionCorrection VersionCorrection

	// ValidFrom and ValidTo bound the valuation times the compilation may
	// serve, from the validity windows of the functions in its graphs. Zero
	// bounds are unbounded.
	ValidFrom time.Time
	ValidTo   time.Time
}

// IsValidFor reports whether the compilation may serve the valuation time.
func (v *CompiledView) IsValidFor(valuation time.Time) bool {
	if !v.ValidFrom.IsZero() && valuation.Before(v.ValidFrom) {
		return false
	}
	if !v.ValidTo.IsZero() && !valuation.Before(v.ValidTo) {
		return false
	}
	return true
}

// MarketDataRequirements unions the live data specifications of all graphs.
func (v *CompiledView) MarketDataRequirements() SpecSet {
	out := make(SpecSet)
	for _, g := range v.Graphs {
		out.AddAll(g.RequiredMarketData())
	}
	return out
}

// ConfigNames lists the calculation configurations in stable order.
func (v *CompiledView) ConfigNames() []string {
	names := make([]string, 0, len(v.Graphs))
	for name := range v.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone copies the compiled view and its graph containers so the copy may be
// rewritten without affecting cached state. Dependency nodes, the portfolio and
// the definition are shared.
func (v *CompiledView) Clone() *CompiledView {
	out := *v
	out.Graphs = make(map[string]*DependencyGraph, len(v.Graphs))
	for name, g := range v.Graphs {
		out.Graphs[name] = g.Clone()
	}
	out.ResolvedIdentifiers = make(map[TargetReference]UniqueID, len(v.ResolvedIdentifiers))
	for ref, uid := range v.ResolvedIdentifiers {
		out.ResolvedIdentifiers[ref] = uid
	}
	return &out
}

// WithResolverVersionCorrection returns a copy bound to a new resolution
// instant. Graphs are shared: the caller asserts the resolutions still hold.
func (v *CompiledView) WithResolverVersionCorrection(vc VersionCorrection) *CompiledView {
	out := *v
	out.VersionCorrection = vc
	return &out
}
