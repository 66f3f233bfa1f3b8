package calc

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// Cycle is one execution of a compiled view against a snapshot. A delta cycle
// carries the previous cycle's values forward and re-executes only the nodes
// downstream of changed market data.
type Cycle struct {
	uid       domain.UniqueID
	valuation time.Time
	compiled  *domain.CompiledView
	snapshot  ports.MarketDataSnapshot
	clock     clockwork.Clock
	log       ports.Logger

	bound     map[*domain.DependencyNode]Function
	positions map[domain.UniqueID]*domain.Position

	mu       sync.Mutex
	values   map[string]map[domain.ValueSpecification]any
	previous map[string]map[domain.ValueSpecification]any
	missing  map[string]domain.SpecSet
	duration time.Duration

	state atomic.Uint32
	refs  atomic.Int32
}

var _ ports.ComputationCycle = (*Cycle)(nil)

// UniqueID identifies the cycle.
func (c *Cycle) UniqueID() domain.UniqueID { return c.uid }

// State returns the cycle's lifecycle state.
func (c *Cycle) State() ports.CycleState { return ports.CycleState(c.state.Load()) }

// ValuationTime returns the cycle's valuation instant.
func (c *Cycle) ValuationTime() time.Time { return c.valuation }

// PreExecute copies the previous cycle's computed values as this cycle's
// baseline. Nodes whose market data is unchanged keep the baseline value
// without re-executing.
func (c *Cycle) PreExecute(previous ports.ComputationCycle) {
	prev, ok := previous.(*Cycle)
	if !ok || prev == nil {
		return
	}
	prev.mu.Lock()
	defer prev.mu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	for config, vals := range prev.values {
		carried := make(map[domain.ValueSpecification]any, len(vals))
		for spec, v := range vals {
			carried[spec] = v
		}
		c.previous[config] = carried
	}
}

// Execute computes every configuration's graph against the snapshot.
func (c *Cycle) Execute(ctx context.Context) error {
	if !c.state.CompareAndSwap(uint32(ports.CycleAwaitingExecution), uint32(ports.CycleExecuting)) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCycleNotAwaiting, "executing cycle"),
			"cycle", c.uid.String()), "state", int(c.State()))
	}
	start := c.clock.Now()
	for _, name := range c.compiled.ConfigNames() {
		if err := ctx.Err(); err != nil {
			c.state.Store(uint32(ports.CycleAwaitingExecution))
			return err
		}
		if err := c.executeConfig(name); err != nil {
			c.state.Store(uint32(ports.CycleAwaitingExecution))
			return zerr.With(zerr.Wrap(err, "executing configuration"), "config", name)
		}
	}
	c.mu.Lock()
	c.duration = c.clock.Now().Sub(start)
	c.mu.Unlock()
	c.state.Store(uint32(ports.CycleExecuted))
	return nil
}

func (c *Cycle) executeConfig(name string) error {
	graph := c.compiled.Graphs[name]
	order := topological(graph)

	c.mu.Lock()
	carried := c.previous[name]
	c.mu.Unlock()

	values := make(map[domain.ValueSpecification]any, len(order))
	missing := make(domain.SpecSet)
	changed := make(map[*domain.DependencyNode]bool, len(order))

	for _, node := range order {
		if node.MarketData {
			c.executeMarketNode(node, carried, values, missing, changed)
			continue
		}
		if err := c.executeFunctionNode(graph, node, carried, values, missing, changed); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.values[name] = values
	if c.missing == nil {
		c.missing = make(map[string]domain.SpecSet)
	}
	c.missing[name] = missing
	c.mu.Unlock()
	return nil
}

func (c *Cycle) executeMarketNode(node *domain.DependencyNode, carried, values map[domain.ValueSpecification]any, missing domain.SpecSet, changed map[*domain.DependencyNode]bool) {
	for _, spec := range node.Outputs {
		v, ok := c.snapshot.Query(spec)
		if !ok {
			if prev, had := carried[spec]; had {
				values[spec] = prev
				continue
			}
			missing.Add(spec)
			changed[node] = true
			continue
		}
		values[spec] = v
		if prev, had := carried[spec]; !had || prev != v {
			changed[node] = true
		}
	}
}

func (c *Cycle) executeFunctionNode(graph *domain.DependencyGraph, node *domain.DependencyNode, carried, values map[domain.ValueSpecification]any, missing domain.SpecSet, changed map[*domain.DependencyNode]bool) error {
	inputsChanged := false
	for _, in := range graph.InputNodes(node) {
		if changed[in] {
			inputsChanged = true
			break
		}
	}
	if !inputsChanged {
		if reused := c.reuseCarried(node, carried, values); reused {
			return nil
		}
	}
	changed[node] = true

	inputs := make([]any, len(node.Inputs))
	for i, spec := range node.Inputs {
		inputs[i] = values[spec]
	}
	env := Env{Valuation: c.valuation, Position: c.positions[node.Target.UID]}
	out, err := c.bound[node](env, node, inputs)
	if err != nil {
		return zerr.With(err, "node", node.Target.String())
	}
	for _, spec := range node.Outputs {
		if out == nil {
			missing.Add(spec)
			continue
		}
		values[spec] = out
	}
	return nil
}

// reuseCarried copies the node's previous outputs into this cycle when every
// one of them was computed last cycle.
func (c *Cycle) reuseCarried(node *domain.DependencyNode, carried, values map[domain.ValueSpecification]any) bool {
	for _, spec := range node.Outputs {
		if _, ok := carried[spec]; !ok {
			return false
		}
	}
	for _, spec := range node.Outputs {
		values[spec] = carried[spec]
	}
	return true
}

// topological orders the graph's nodes producers-first.
func topological(graph *domain.DependencyGraph) []*domain.DependencyNode {
	order := make([]*domain.DependencyNode, 0, graph.Size())
	visited := make(map[*domain.DependencyNode]bool, graph.Size())
	var visit func(*domain.DependencyNode)
	visit = func(node *domain.DependencyNode) {
		if visited[node] {
			return
		}
		visited[node] = true
		for _, in := range graph.InputNodes(node) {
			visit(in)
		}
		order = append(order, node)
	}
	for node := range graph.Nodes() {
		visit(node)
	}
	return order
}

// PostExecute releases the carried baseline; delta inputs are not needed once
// the cycle's own values exist.
func (c *Cycle) PostExecute() {
	c.mu.Lock()
	c.previous = make(map[string]map[domain.ValueSpecification]any)
	c.mu.Unlock()
}

// Duration returns how long Execute took, or zero before completion.
func (c *Cycle) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Values returns the computed values for one configuration. The caller must
// not mutate the map. Returns nil for an unknown configuration or before
// execution.
func (c *Cycle) Values(config string) map[domain.ValueSpecification]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[config]
}

// MissingOutputs returns the specifications that could not be computed for
// one configuration. The caller must not mutate the set.
func (c *Cycle) MissingOutputs(config string) domain.SpecSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.missing[config]
}

// Retain takes an additional counted reference on the cycle.
func (c *Cycle) Retain() (ports.CycleReference, error) {
	for {
		refs := c.refs.Load()
		if refs <= 0 {
			return ports.CycleReference{}, zerr.With(zerr.Wrap(domain.ErrCycleDestroyed, "referencing cycle"), "cycle", c.uid.String())
		}
		if c.refs.CompareAndSwap(refs, refs+1) {
			return ports.CycleReference{Cycle: c, Release: c.release}, nil
		}
	}
}

// release drops one reference, destroying the cycle at zero.
func (c *Cycle) release() {
	if c.refs.Add(-1) != 0 {
		return
	}
	c.state.Store(uint32(ports.CycleDestroyed))
	c.mu.Lock()
	c.values = nil
	c.previous = nil
	c.missing = nil
	c.mu.Unlock()
	c.log.Debug("cycle destroyed", "cycle", c.uid.String())
}
