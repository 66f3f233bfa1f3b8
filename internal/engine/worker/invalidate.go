package worker

import (
	"context"
	"time"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// marketDataCheckBatch is how many market data nodes one availability check
// job covers.
const marketDataCheckBatch = 32

// nodeFilter accepts dependency nodes that remain usable.
type nodeFilter func(*domain.DependencyNode) bool

// includeNodes computes the closed set of nodes a filter keeps: a node is
// included only if the filter accepts it and every input node is included, so
// exclusion propagates to all dependents. Memoized per node.
type includeNodes struct {
	graph  *domain.DependencyGraph
	accept nodeFilter
	memo   map[*domain.DependencyNode]bool
}

func newIncludeNodes(graph *domain.DependencyGraph, accept nodeFilter) *includeNodes {
	return &includeNodes{
		graph:  graph,
		accept: accept,
		memo:   make(map[*domain.DependencyNode]bool, graph.Size()),
	}
}

func (in *includeNodes) include(node *domain.DependencyNode) bool {
	if v, ok := in.memo[node]; ok {
		return v
	}
	// Break self-referential lookups while the node is being evaluated.
	in.memo[node] = false
	ok := in.accept(node)
	if ok {
		for _, input := range in.graph.InputNodes(node) {
			if !in.include(input) {
				ok = false
				break
			}
		}
	}
	in.memo[node] = ok
	return ok
}

func allOf(filters ...nodeFilter) nodeFilter {
	return func(n *domain.DependencyNode) bool {
		for _, f := range filters {
			if !f(n) {
				return false
			}
		}
		return true
	}
}

func validityWindowFilter(valuation time.Time) nodeFilter {
	return func(n *domain.DependencyNode) bool {
		return n.Valid.Contains(valuation)
	}
}

func invalidTargetFilter(invalid map[domain.UniqueID]struct{}) nodeFilter {
	return func(n *domain.DependencyNode) bool {
		_, bad := invalid[n.Target.UID]
		return !bad
	}
}

func changedPortfolioFilter(changed map[domain.ObjectID]struct{}) nodeFilter {
	return func(n *domain.DependencyNode) bool {
		switch n.Target.Kind {
		case domain.KindPosition, domain.KindTrade, domain.KindPortfolioNode:
			_, bad := changed[n.Target.UID.ObjectID()]
			return !bad
		default:
			return true
		}
	}
}

// staleMarketDataFilter checks every market data node's output against the
// provider's current availability, in parallel batches, and excludes nodes
// the provider can no longer source.
func (w *Worker) staleMarketDataFilter(ctx context.Context, graph *domain.DependencyGraph) (nodeFilter, error) {
	var nodes []*domain.DependencyNode
	for n := range graph.Nodes() {
		if n.MarketData {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return func(*domain.DependencyNode) bool { return true }, nil
	}

	stale := make([]bool, len(nodes))
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(nodes); start += marketDataCheckBatch {
		end := min(start+marketDataCheckBatch, len(nodes))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				for _, out := range nodes[i].Outputs {
					if !w.provider.Available(out) {
						stale[i] = true
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "checking market data availability")
	}

	staleSet := make(map[*domain.DependencyNode]struct{})
	for i, s := range stale {
		if s {
			staleSet[nodes[i]] = struct{}{}
		}
	}
	return func(n *domain.DependencyNode) bool {
		_, bad := staleSet[n]
		return !bad
	}, nil
}

// filterPreviousGraphs reduces a previous compilation to its still-valid parts
// and packages them for incremental compilation. invalid carries unique ids
// whose resolution changed; nil means only function validity and market data
// availability are checked.
func (w *Worker) filterPreviousGraphs(ctx context.Context, cached *domain.CompiledView, invalid map[domain.UniqueID]struct{}, valuation time.Time, vc domain.VersionCorrection) (*ports.IncrementalInput, error) {
	work := cached.Clone()

	changedPositions, err := w.rewritePortfolio(ctx, work, invalid, vc)
	if err != nil {
		return nil, err
	}

	in := &ports.IncrementalInput{
		PreviousGraphs:      make(map[string]ports.FilteredGraph, len(work.Graphs)),
		PreviousResolutions: make(map[domain.TargetReference]domain.UniqueID, len(work.ResolvedIdentifiers)),
		ChangedPositions:    changedPositions,
	}
	for ref, uid := range work.ResolvedIdentifiers {
		if invalid != nil {
			if _, bad := invalid[uid]; bad {
				continue
			}
		}
		in.PreviousResolutions[ref] = uid
	}

	for name, graph := range work.Graphs {
		filters := []nodeFilter{validityWindowFilter(valuation)}
		if invalid != nil {
			filters = append(filters, invalidTargetFilter(invalid))
		}
		if changedPositions != nil {
			filters = append(filters, changedPortfolioFilter(changedPositions))
		}
		mdFilter, err := w.staleMarketDataFilter(ctx, graph)
		if err != nil {
			return nil, err
		}
		filters = append(filters, mdFilter)

		inc := newIncludeNodes(graph, allOf(filters...))
		included := 0
		for n := range graph.Nodes() {
			if inc.include(n) {
				included++
			}
		}
		if included == 0 {
			// Nothing survives: this configuration recompiles from scratch.
			continue
		}
		if included == graph.Size() {
			in.PreviousGraphs[name] = ports.FilteredGraph{Graph: graph}
			continue
		}

		sub := graph.SubGraph(func(n *domain.DependencyNode) bool { return inc.memo[n] })
		missing := make(map[domain.ValueRequirement]domain.ValueSpecification)
		for spec, reqs := range graph.TerminalOutputs() {
			if _, ok := sub.NodeProducing(spec); ok {
				continue
			}
			for req := range reqs {
				missing[req] = spec
			}
		}
		in.PreviousGraphs[name] = ports.FilteredGraph{Graph: sub, MissingRequirements: missing}
	}
	return in, nil
}

// rewritePortfolio handles an invalidated portfolio resolution: it resolves
// the tree at the new version-correction, maps structurally equivalent nodes
// onto their new identifiers inside the graphs, and returns the object ids of
// positions and nodes that could not be mapped and need recompilation. A nil
// return means the portfolio was not invalidated.
func (w *Worker) rewritePortfolio(ctx context.Context, work *domain.CompiledView, invalid map[domain.UniqueID]struct{}, vc domain.VersionCorrection) (map[domain.ObjectID]struct{}, error) {
	if work.Portfolio == nil || invalid == nil {
		return nil, nil
	}
	if _, changed := invalid[work.Portfolio.UID]; !changed {
		return nil, nil
	}

	fresh, err := w.cfg.Resolver.ResolvePortfolio(ctx, work.Portfolio.UID.ObjectID(), vc)
	if err != nil {
		return nil, zerr.Wrap(err, "resolving changed portfolio")
	}

	mapper := domain.NewNodeEquivalenceMapper(fresh.Root)
	mapNodes(mapper, work.Portfolio.Root)
	unmapped := mapper.FindUnmapped(work.Portfolio.Root)

	uidByObject := nodeUIDsByObject(fresh.Root)
	for _, graph := range work.Graphs {
		var rewrite []*domain.DependencyNode
		for n := range graph.Nodes() {
			switch n.Target.Kind {
			case domain.KindPosition, domain.KindPortfolioNode:
			default:
				continue
			}
			oid := n.Target.UID.ObjectID()
			if _, bad := unmapped[oid]; bad {
				continue
			}
			if newUID, ok := uidByObject[oid]; ok && newUID != n.Target.UID {
				rewrite = append(rewrite, n)
			}
		}
		for _, n := range rewrite {
			newTarget := domain.TargetSpec{Kind: n.Target.Kind, UID: uidByObject[n.Target.UID.ObjectID()]}
			if _, err := graph.ReplaceNode(n, newTarget); err != nil {
				return nil, zerr.Wrap(err, "rewriting portfolio node")
			}
		}
	}

	work.Portfolio = fresh
	// The portfolio resolution itself re-resolved; record it so the fresh
	// unique id is carried into the incremental compile.
	for ref, uid := range work.ResolvedIdentifiers {
		if uid.ObjectID() == fresh.UID.ObjectID() {
			work.ResolvedIdentifiers[ref] = fresh.UID
		}
	}
	if unmapped == nil {
		unmapped = make(map[domain.ObjectID]struct{})
	}
	return unmapped, nil
}

func mapNodes(mapper *domain.NodeEquivalenceMapper, node *domain.PortfolioNode) {
	if _, ok := mapper.Map(node); ok {
		return
	}
	for _, child := range node.Children {
		mapNodes(mapper, child)
	}
}

// nodeUIDsByObject indexes a portfolio tree's node and position unique ids by
// object id.
func nodeUIDsByObject(root *domain.PortfolioNode) map[domain.ObjectID]domain.UniqueID {
	out := make(map[domain.ObjectID]domain.UniqueID)
	var walk func(*domain.PortfolioNode)
	walk = func(n *domain.PortfolioNode) {
		out[n.UID.ObjectID()] = n.UID
		for _, p := range n.Positions {
			out[p.UID.ObjectID()] = p.UID
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	return out
}
