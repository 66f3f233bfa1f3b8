package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Window is a half-open validity interval [From, To). A zero bound is unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// Intersect narrows the window to the overlap with other.
func (w Window) Intersect(other Window) Window {
	out := w
	if !other.From.IsZero() && (out.From.IsZero() || other.From.After(out.From)) {
		out.From = other.From
	}
	if !other.To.IsZero() && (out.To.IsZero() || other.To.Before(out.To)) {
		out.To = other.To
	}
	return out
}

// DependencyNode is one computation step: a function applied to a target,
// consuming input specifications produced by other nodes and producing output
// specifications. Nodes are immutable once added to a graph; node identity is
// pointer identity.
type DependencyNode struct {
	Target   TargetSpec
	Function string
	// MarketData marks a leaf node that sources its outputs from the live data
	// provider rather than from computed inputs.
	MarketData bool
	// Valid is the window over which the producing function may be used. An
	// all-zero window never expires.
	Valid   Window
	Inputs  []ValueSpecification
	Outputs []ValueSpecification
}

// DependencyGraph is a DAG of computation nodes producing the specifications
// needed to satisfy a set of terminal outputs. The node objects are shared
// immutable values; only the containers belong to the graph, so Clone is cheap
// and a cloned graph may be mutated without affecting the original.
type DependencyGraph struct {
	nodes      map[*DependencyNode]struct{}
	producers  map[ValueSpecification]*DependencyNode
	inputs     map[*DependencyNode][]*DependencyNode
	terminals  map[ValueSpecification]ReqSet
	marketData SpecSet
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes:      make(map[*DependencyNode]struct{}),
		producers:  make(map[ValueSpecification]*DependencyNode),
		inputs:     make(map[*DependencyNode][]*DependencyNode),
		terminals:  make(map[ValueSpecification]ReqSet),
		marketData: make(SpecSet),
	}
}

// AddNode inserts a node, indexing its outputs. Every input specification must
// already have a producer in the graph; nodes are added leaf-to-root.
func (g *DependencyGraph) AddNode(node *DependencyNode) error {
	if _, ok := g.nodes[node]; ok {
		return zerr.With(zerr.Wrap(ErrNodeAlreadyInGraph, "adding node"), "node", node.Target.String())
	}
	ins := make([]*DependencyNode, 0, len(node.Inputs))
	for _, in := range node.Inputs {
		producer, ok := g.producers[in]
		if !ok {
			return zerr.With(zerr.With(zerr.Wrap(ErrMissingProducer, "adding node"),
				"input", in.String()), "node", node.Target.String())
		}
		ins = append(ins, producer)
	}
	g.nodes[node] = struct{}{}
	g.inputs[node] = ins
	for _, out := range node.Outputs {
		g.producers[out] = node
		if node.MarketData {
			g.marketData.Add(out)
		}
	}
	return nil
}

// Size returns the number of nodes.
func (g *DependencyGraph) Size() int {
	return len(g.nodes)
}

// Nodes returns the node set. The caller must not mutate it.
func (g *DependencyGraph) Nodes() map[*DependencyNode]struct{} {
	return g.nodes
}

// InputNodes returns the producing nodes for a node's inputs.
func (g *DependencyGraph) InputNodes(node *DependencyNode) []*DependencyNode {
	return g.inputs[node]
}

// NodeProducing returns the node producing the given specification, if any.
func (g *DependencyGraph) NodeProducing(spec ValueSpecification) (*DependencyNode, bool) {
	n, ok := g.producers[spec]
	return n, ok
}

// AddTerminalOutput records that the given requirements are satisfied by the
// specification as a final deliverable of the graph.
func (g *DependencyGraph) AddTerminalOutput(spec ValueSpecification, reqs ...ValueRequirement) {
	set, ok := g.terminals[spec]
	if !ok {
		set = make(ReqSet, len(reqs))
		g.terminals[spec] = set
	}
	for _, r := range reqs {
		set.Add(r)
	}
}

// TerminalOutputs maps each terminal specification to the original requirements
// that demanded it. The caller must not mutate it.
func (g *DependencyGraph) TerminalOutputs() map[ValueSpecification]ReqSet {
	return g.terminals
}

// RemoveTerminalOutput drops the given requirements from a terminal
// specification, removing the terminal entirely once no requirement remains.
func (g *DependencyGraph) RemoveTerminalOutput(spec ValueSpecification, reqs ...ValueRequirement) {
	set, ok := g.terminals[spec]
	if !ok {
		return
	}
	for _, r := range reqs {
		delete(set, r)
	}
	if len(set) == 0 {
		delete(g.terminals, spec)
	}
}

// RequiredMarketData returns the specifications sourced from the live data
// provider. The caller must not mutate it.
func (g *DependencyGraph) RequiredMarketData() SpecSet {
	return g.marketData
}

// Clone copies the graph containers. Node objects are shared.
func (g *DependencyGraph) Clone() *DependencyGraph {
	out := &DependencyGraph{
		nodes:      make(map[*DependencyNode]struct{}, len(g.nodes)),
		producers:  make(map[ValueSpecification]*DependencyNode, len(g.producers)),
		inputs:     make(map[*DependencyNode][]*DependencyNode, len(g.inputs)),
		terminals:  make(map[ValueSpecification]ReqSet, len(g.terminals)),
		marketData: g.marketData.Clone(),
	}
	for n := range g.nodes {
		out.nodes[n] = struct{}{}
	}
	for spec, n := range g.producers {
		out.producers[spec] = n
	}
	for n, ins := range g.inputs {
		out.inputs[n] = ins
	}
	for spec, reqs := range g.terminals {
		set := make(ReqSet, len(reqs))
		set.AddAll(reqs)
		out.terminals[spec] = set
	}
	return out
}

// SubGraph returns a new graph containing only the nodes the predicate accepts.
// Terminal outputs whose producer is excluded are dropped. The predicate must
// produce a closed node set: callers invalidating nodes are expected to have
// already propagated exclusion to dependents.
func (g *DependencyGraph) SubGraph(accept func(*DependencyNode) bool) *DependencyGraph {
	out := NewDependencyGraph()
	for n := range g.nodes {
		if !accept(n) {
			continue
		}
		out.nodes[n] = struct{}{}
		out.inputs[n] = g.inputs[n]
		for _, spec := range n.Outputs {
			out.producers[spec] = n
			if n.MarketData {
				out.marketData.Add(spec)
			}
		}
	}
	for spec, reqs := range g.terminals {
		if _, ok := out.producers[spec]; !ok {
			continue
		}
		set := make(ReqSet, len(reqs))
		set.AddAll(reqs)
		out.terminals[spec] = set
	}
	return out
}

// ReplaceNode substitutes a node with a copy bound to a new target, rewriting
// the graph's indexes. Output and input specifications targeting the old unique
// id are rewritten to the new one so consumers keep matching.
func (g *DependencyGraph) ReplaceNode(node *DependencyNode, newTarget TargetSpec) (*DependencyNode, error) {
	if _, ok := g.nodes[node]; !ok {
		return nil, zerr.With(zerr.Wrap(ErrNodeNotInGraph, "replacing node"), "node", node.Target.String())
	}
	replacement := &DependencyNode{
		Target:     newTarget,
		Function:   node.Function,
		MarketData: node.MarketData,
		Valid:      node.Valid,
		Inputs:     node.Inputs,
		Outputs:    make([]ValueSpecification, len(node.Outputs)),
	}
	rewritten := make(map[ValueSpecification]ValueSpecification, len(node.Outputs))
	for i, out := range node.Outputs {
		newOut := out
		newOut.Target = newTarget
		replacement.Outputs[i] = newOut
		rewritten[out] = newOut
	}
	delete(g.nodes, node)
	g.nodes[replacement] = struct{}{}
	g.inputs[replacement] = g.inputs[node]
	delete(g.inputs, node)
	for old, repl := range rewritten {
		delete(g.producers, old)
		g.producers[repl] = replacement
		if node.MarketData {
			delete(g.marketData, old)
			g.marketData.Add(repl)
		}
		if reqs, ok := g.terminals[old]; ok {
			delete(g.terminals, old)
			g.terminals[repl] = reqs
		}
	}
	// Consumers referencing a rewritten output keep their input slices; the
	// producer index above is what lookups go through.
	for _, ins := range g.inputs {
		for i, in := range ins {
			if in == node {
				ins[i] = replacement
			}
		}
	}
	return replacement, nil
}
