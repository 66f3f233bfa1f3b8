// Package compiler builds dependency graphs from view definitions. Portfolio
// outputs expand into one pricing node per position plus aggregation nodes up
// the portfolio tree; specific requirements become market data leaves or
// security pricing nodes. Dispatch over target kinds happens here, once per
// node, never during execution.
package compiler

import (
	"context"
	"sync/atomic"
	"time"

	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// MarketValueName is the value sourced from the live provider to price a
// security.
const MarketValueName = "Market_Value"

// Compiler implements ports.GraphCompiler against a target resolver and the
// market data provider whose availability the worker keys its cache on.
type Compiler struct {
	resolver ports.TargetResolver
	provider ports.MarketDataProvider
	log      ports.Logger
	nextID   atomic.Int64
}

var _ ports.GraphCompiler = (*Compiler)(nil)

// New creates a compiler.
func New(resolver ports.TargetResolver, provider ports.MarketDataProvider, log ports.Logger) *Compiler {
	return &Compiler{resolver: resolver, provider: provider, log: log}
}

// CompileFull builds every calculation configuration's graph from scratch.
func (c *Compiler) CompileFull(ctx context.Context, def *domain.ViewDefinition, valuation time.Time, vc domain.VersionCorrection) (*domain.CompiledView, error) {
	return c.compile(ctx, def, valuation, vc, ports.IncrementalInput{})
}

// CompileIncremental rebuilds only what the previous compilation lost,
// reusing surviving graphs and seeding resolution from the previous map.
func (c *Compiler) CompileIncremental(ctx context.Context, def *domain.ViewDefinition, valuation time.Time, vc domain.VersionCorrection, prev ports.IncrementalInput) (*domain.CompiledView, error) {
	return c.compile(ctx, def, valuation, vc, prev)
}

func (c *Compiler) compile(ctx context.Context, def *domain.ViewDefinition, valuation time.Time, vc domain.VersionCorrection, prev ports.IncrementalInput) (*domain.CompiledView, error) {
	compiled := &domain.CompiledView{
		Definition:          def,
		Graphs:              make(map[string]*domain.DependencyGraph, len(def.Configs)),
		CompilationID:       c.nextID.Add(1),
		ResolvedIdentifiers: make(map[domain.TargetReference]domain.UniqueID),
		VersionCorrection:   vc,
	}
	for ref, uid := range prev.PreviousResolutions {
		compiled.ResolvedIdentifiers[ref] = uid
	}

	portfolio, err := c.resolvePortfolio(ctx, def, vc, compiled.ResolvedIdentifiers)
	if err != nil {
		return nil, err
	}
	compiled.Portfolio = portfolio

	for _, cfg := range def.Configs {
		b := &builder{
			compiler:    c,
			vc:          vc,
			resolutions: compiled.ResolvedIdentifiers,
		}
		if previous, ok := prev.PreviousGraphs[cfg.Name]; ok {
			// Surviving producers are reused; build only re-creates what the
			// filter removed, including the previously missing requirements.
			b.graph = previous.Graph.Clone()
			if len(previous.MissingRequirements) > 0 {
				c.log.Debug("retrying filtered requirements",
					"config", cfg.Name, "count", len(previous.MissingRequirements))
			}
		} else {
			b.graph = domain.NewDependencyGraph()
		}
		if err := b.build(ctx, cfg, portfolio); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "building configuration"), "config", cfg.Name)
		}
		compiled.Graphs[cfg.Name] = b.graph
		c.widenValidity(compiled, b.graph)
	}
	return compiled, nil
}

func (c *Compiler) resolvePortfolio(ctx context.Context, def *domain.ViewDefinition, vc domain.VersionCorrection, resolutions map[domain.TargetReference]domain.UniqueID) (*domain.Portfolio, error) {
	if def.Portfolio == (domain.ObjectID{}) {
		return nil, nil
	}
	portfolio, err := c.resolver.ResolvePortfolio(ctx, def.Portfolio, vc)
	if err != nil {
		return nil, zerr.Wrap(err, "resolving portfolio")
	}
	ref := domain.TargetReference{
		Kind: domain.KindPortfolio,
		ID:   domain.NewExternalID(def.Portfolio.Scheme, def.Portfolio.Value),
	}
	resolutions[ref] = portfolio.UID
	return portfolio, nil
}

// widenValidity narrows the compiled validity bounds to the intersection of
// the graph's node windows.
func (c *Compiler) widenValidity(compiled *domain.CompiledView, graph *domain.DependencyGraph) {
	for node := range graph.Nodes() {
		if !node.Valid.From.IsZero() &&
			(compiled.ValidFrom.IsZero() || node.Valid.From.After(compiled.ValidFrom)) {
			compiled.ValidFrom = node.Valid.From
		}
		if !node.Valid.To.IsZero() &&
			(compiled.ValidTo.IsZero() || node.Valid.To.Before(compiled.ValidTo)) {
			compiled.ValidTo = node.Valid.To
		}
	}
}
