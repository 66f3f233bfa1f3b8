// Package calc executes compiled views: it turns a compiled view plus a
// market data snapshot into a reference-counted computation cycle and runs
// the dependency graphs leaf to root. The function a node executes is bound
// when the cycle is created, from a registry keyed by the node's function
// name.
package calc

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// Env gives a function access to the cycle's execution environment.
type Env struct {
	// Valuation is the cycle's valuation instant.
	Valuation time.Time
	// Position is the position the node targets, or nil for non-position
	// targets.
	Position *domain.Position
}

// Function computes one node's output from its resolved input values. Inputs
// arrive in the node's declared order; an input whose producer had no value
// this cycle is nil.
type Function func(env Env, node *domain.DependencyNode, inputs []any) (any, error)

// Engine implements ports.ComputationEngine over a function registry.
type Engine struct {
	clock clockwork.Clock
	log   ports.Logger

	mu        sync.RWMutex
	functions map[string]Function
	seq       atomic.Int64
}

var _ ports.ComputationEngine = (*Engine)(nil)

// NewEngine creates an engine with the builtin functions registered.
func NewEngine(clock clockwork.Clock, log ports.Logger) *Engine {
	e := &Engine{
		clock:     clock,
		log:       log,
		functions: make(map[string]Function),
	}
	e.functions[domain.FunctionPositionScaling] = positionScaling
	e.functions[domain.FunctionSumAggregation] = sumAggregation
	e.functions[domain.FunctionSecurityPricing] = securityPricing
	return e
}

// Register adds a function under the given name, replacing any previous
// registration. Registration only affects cycles created afterwards.
func (e *Engine) Register(name string, fn Function) {
	e.mu.Lock()
	e.functions[name] = fn
	e.mu.Unlock()
}

// CreateCycle builds a cycle for the compiled view. Every graph node's
// function is bound here; an unregistered function name fails creation, not
// execution.
func (e *Engine) CreateCycle(compiled *domain.CompiledView, snapshot ports.MarketDataSnapshot, opts domain.CycleOptions, deltaFrom ports.ComputationCycle) (ports.CycleReference, error) {
	if compiled == nil {
		return ports.CycleReference{}, domain.ErrViewNotCompiled
	}
	c := &Cycle{
		uid: domain.NewUniqueID("Cycle", compiled.Definition.Name+"-"+strconv.FormatInt(e.seq.Add(1), 10), ""),
		valuation: opts.ValuationTime,
		compiled:  compiled,
		snapshot:  snapshot,
		clock:     e.clock,
		log:       e.log,
		bound:     make(map[*domain.DependencyNode]Function),
		positions: indexPositions(compiled.Portfolio),
		values:    make(map[string]map[domain.ValueSpecification]any),
		previous:  make(map[string]map[domain.ValueSpecification]any),
	}
	c.refs.Store(1)

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, name := range compiled.ConfigNames() {
		for node := range compiled.Graphs[name].Nodes() {
			if node.MarketData {
				continue
			}
			fn, ok := e.functions[node.Function]
			if !ok {
				return ports.CycleReference{}, zerr.With(zerr.With(
					zerr.Wrap(domain.ErrUnknownFunction, "binding functions"),
					"function", node.Function), "node", node.Target.String())
			}
			c.bound[node] = fn
		}
	}

	if deltaFrom != nil {
		c.PreExecute(deltaFrom)
	}
	return ports.CycleReference{Cycle: c, Release: c.release}, nil
}

func indexPositions(portfolio *domain.Portfolio) map[domain.UniqueID]*domain.Position {
	out := make(map[domain.UniqueID]*domain.Position)
	if portfolio == nil || portfolio.Root == nil {
		return out
	}
	var walk func(*domain.PortfolioNode)
	walk = func(node *domain.PortfolioNode) {
		for _, pos := range node.Positions {
			out[pos.UID] = pos
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(portfolio.Root)
	return out
}

func positionScaling(env Env, node *domain.DependencyNode, inputs []any) (any, error) {
	if env.Position == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTargetNotResolved, "scaling position"), "node", node.Target.String())
	}
	price, ok := numeric(inputs)
	if !ok {
		return nil, nil
	}
	return price * env.Position.Quantity, nil
}

func sumAggregation(_ Env, _ *domain.DependencyNode, inputs []any) (any, error) {
	sum := 0.0
	present := false
	for _, in := range inputs {
		v, ok := in.(float64)
		if !ok {
			continue
		}
		sum += v
		present = true
	}
	if !present && len(inputs) > 0 {
		return nil, nil
	}
	return sum, nil
}

func securityPricing(_ Env, _ *domain.DependencyNode, inputs []any) (any, error) {
	v, ok := numeric(inputs)
	if !ok {
		return nil, nil
	}
	return v, nil
}

func numeric(inputs []any) (float64, bool) {
	if len(inputs) == 0 {
		return 0, false
	}
	v, ok := inputs[0].(float64)
	return v, ok
}
