package compiler

import (
	"context"
	"errors"

	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
)

var (
	positionProps  = domain.NewProperties(map[string][]string{"Function": {domain.FunctionPositionScaling}})
	aggregateProps = domain.NewProperties(map[string][]string{"Function": {domain.FunctionSumAggregation}})
	securityProps  = domain.NewProperties(map[string][]string{"Function": {domain.FunctionSecurityPricing}})
)

// builder assembles one calculation configuration's graph. It only creates
// producers the graph does not already have, so the same code path serves full
// builds (empty graph) and incremental rebuilds (cloned surviving graph).
type builder struct {
	compiler    *Compiler
	vc          domain.VersionCorrection
	graph       *domain.DependencyGraph
	resolutions map[domain.TargetReference]domain.UniqueID
}

func (b *builder) build(ctx context.Context, cfg domain.CalcConfig, portfolio *domain.Portfolio) error {
	if portfolio != nil && portfolio.Root != nil {
		for _, name := range cfg.PortfolioOutputs {
			if _, err := b.aggregateNode(cfg, portfolio.Root, name); err != nil {
				return err
			}
		}
	}
	for _, req := range cfg.SpecificRequirements {
		req = domain.InternRequirement(req)
		spec, ok, err := b.specific(ctx, req)
		if err != nil {
			return err
		}
		if !ok {
			b.compiler.log.Warn("requirement cannot be satisfied", "requirement", req.String())
			continue
		}
		b.graph.AddTerminalOutput(spec, req)
	}
	return nil
}

// aggregateNode builds the aggregation node for one portfolio tree level,
// recursing into children and positions first so inputs exist before the node
// is added.
func (b *builder) aggregateNode(cfg domain.CalcConfig, node *domain.PortfolioNode, name string) (domain.ValueSpecification, error) {
	spec := domain.ValueSpecification{
		ValueName:  name,
		Target:     domain.TargetSpec{Kind: domain.KindPortfolioNode, UID: node.UID},
		Properties: aggregateProps,
	}
	if _, ok := b.graph.NodeProducing(spec); ok {
		return spec, nil
	}
	inputs := make([]domain.ValueSpecification, 0, len(node.Children)+len(node.Positions))
	for _, child := range node.Children {
		childSpec, err := b.aggregateNode(cfg, child, name)
		if err != nil {
			return domain.ValueSpecification{}, err
		}
		inputs = append(inputs, childSpec)
	}
	for _, pos := range node.Positions {
		posSpec, ok, err := b.positionNode(pos, name)
		if err != nil {
			return domain.ValueSpecification{}, err
		}
		if !ok {
			continue
		}
		inputs = append(inputs, posSpec)
	}
	err := b.graph.AddNode(&domain.DependencyNode{
		Target:   domain.TargetSpec{Kind: domain.KindPortfolioNode, UID: node.UID},
		Function: domain.FunctionSumAggregation,
		Inputs:   inputs,
		Outputs:  []domain.ValueSpecification{spec},
	})
	if err != nil {
		return domain.ValueSpecification{}, err
	}
	req := domain.InternRequirement(domain.ValueRequirement{
		ValueName: name,
		Target: domain.TargetReference{
			Kind: domain.KindPortfolioNode,
			ID:   domain.NewExternalID(node.UID.Scheme, node.UID.Value),
		},
	})
	b.graph.AddTerminalOutput(spec, req)
	return spec, nil
}

// positionNode builds the pricing node for one position on top of a market
// data leaf for its security. Positions without sourceable market data are
// skipped and reported by the caller's terminal set staying short.
func (b *builder) positionNode(pos *domain.Position, name string) (domain.ValueSpecification, bool, error) {
	spec := domain.ValueSpecification{
		ValueName:  name,
		Target:     domain.TargetSpec{Kind: domain.KindPosition, UID: pos.UID},
		Properties: positionProps,
	}
	if _, ok := b.graph.NodeProducing(spec); ok {
		return spec, true, nil
	}
	mdSpec, ok, err := b.marketDataLeaf(domain.ValueRequirement{
		ValueName: MarketValueName,
		Target:    domain.TargetReference{Kind: domain.KindPrimitive, ID: pos.Security},
	})
	if err != nil {
		return domain.ValueSpecification{}, false, err
	}
	if !ok {
		b.compiler.log.Warn("no market data for position",
			"position", pos.UID.String(), "security", pos.Security.String())
		return domain.ValueSpecification{}, false, nil
	}
	err = b.graph.AddNode(&domain.DependencyNode{
		Target:   domain.TargetSpec{Kind: domain.KindPosition, UID: pos.UID},
		Function: domain.FunctionPositionScaling,
		Inputs:   []domain.ValueSpecification{mdSpec},
		Outputs:  []domain.ValueSpecification{spec},
	})
	if err != nil {
		return domain.ValueSpecification{}, false, err
	}
	req := domain.InternRequirement(domain.ValueRequirement{
		ValueName: name,
		Target: domain.TargetReference{
			Kind: domain.KindPosition,
			ID:   domain.NewExternalID(pos.UID.Scheme, pos.UID.Value),
		},
	})
	b.graph.AddTerminalOutput(spec, req)
	return spec, true, nil
}

// marketDataLeaf ensures a sourcing node exists for the requirement if the
// provider can satisfy it.
func (b *builder) marketDataLeaf(req domain.ValueRequirement) (domain.ValueSpecification, bool, error) {
	spec, ok := b.compiler.provider.Satisfies(req)
	if !ok {
		return domain.ValueSpecification{}, false, nil
	}
	if _, exists := b.graph.NodeProducing(spec); exists {
		return spec, true, nil
	}
	err := b.graph.AddNode(&domain.DependencyNode{
		Target:     spec.Target,
		Function:   domain.FunctionMarketData,
		MarketData: true,
		Outputs:    []domain.ValueSpecification{spec},
	})
	if err != nil {
		return domain.ValueSpecification{}, false, err
	}
	return spec, true, nil
}

// specific satisfies one addressed requirement. Structural target kinds get
// their structural producer; only primitive targets are sourced directly from
// market data. The second return is false when the requirement cannot be
// built.
func (b *builder) specific(ctx context.Context, req domain.ValueRequirement) (domain.ValueSpecification, bool, error) {
	switch req.Target.Kind {
	case domain.KindSecurity:
		uid, ok, err := b.resolveRef(ctx, req.Target)
		if err != nil || !ok {
			return domain.ValueSpecification{}, false, err
		}
		return b.securityNode(req, uid)
	case domain.KindPosition, domain.KindPortfolioNode:
		spec, ok := b.portfolioProduced(req)
		return spec, ok, nil
	default:
		return b.tryDirect(req)
	}
}

// portfolioProduced reuses the terminal the portfolio expansion built for a
// position or aggregate target. Requirements addressing targets outside the
// compiled portfolio cannot be satisfied.
func (b *builder) portfolioProduced(req domain.ValueRequirement) (domain.ValueSpecification, bool) {
	for spec, reqs := range b.graph.TerminalOutputs() {
		if reqs.Contains(req) {
			return spec, true
		}
	}
	return domain.ValueSpecification{}, false
}

func (b *builder) tryDirect(req domain.ValueRequirement) (domain.ValueSpecification, bool, error) {
	if _, ok := b.compiler.provider.Satisfies(req); !ok {
		return domain.ValueSpecification{}, false, nil
	}
	return b.marketDataLeaf(req)
}

func (b *builder) securityNode(req domain.ValueRequirement, uid domain.UniqueID) (domain.ValueSpecification, bool, error) {
	spec := domain.ValueSpecification{
		ValueName:  req.ValueName,
		Target:     domain.TargetSpec{Kind: domain.KindSecurity, UID: uid},
		Properties: securityProps,
	}
	if _, ok := b.graph.NodeProducing(spec); ok {
		return spec, true, nil
	}
	mdSpec, ok, err := b.marketDataLeaf(domain.ValueRequirement{
		ValueName: MarketValueName,
		Target:    domain.TargetReference{Kind: domain.KindPrimitive, ID: req.Target.ID},
	})
	if err != nil || !ok {
		return domain.ValueSpecification{}, false, err
	}
	err = b.graph.AddNode(&domain.DependencyNode{
		Target:   domain.TargetSpec{Kind: domain.KindSecurity, UID: uid},
		Function: domain.FunctionSecurityPricing,
		Inputs:   []domain.ValueSpecification{mdSpec},
		Outputs:  []domain.ValueSpecification{spec},
	})
	if err != nil {
		return domain.ValueSpecification{}, false, err
	}
	return spec, true, nil
}

// resolveRef resolves a reference through the carried-over resolution map
// before hitting the resolver. Unresolvable references are reported, not
// fatal.
func (b *builder) resolveRef(ctx context.Context, ref domain.TargetReference) (domain.UniqueID, bool, error) {
	if uid, ok := b.resolutions[ref]; ok {
		return uid, true, nil
	}
	uid, err := b.compiler.resolver.Resolve(ctx, ref, b.vc)
	if err != nil {
		if errors.Is(err, domain.ErrTargetNotResolved) {
			b.compiler.log.Warn("target did not resolve", "target", ref.String())
			return domain.UniqueID{}, false, nil
		}
		return domain.UniqueID{}, false, zerr.Wrap(err, "resolving target")
	}
	b.resolutions[ref] = uid
	return uid, true, nil
}
