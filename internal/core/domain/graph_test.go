package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/internal/core/domain"
)

func spec(valueName, scheme, value string) domain.ValueSpecification {
	return domain.ValueSpecification{
		ValueName: valueName,
		Target: domain.TargetSpec{
			Kind: domain.KindSecurity,
			UID:  domain.NewUniqueID(scheme, value, "1"),
		},
		Properties: domain.EmptyProperties,
	}
}

// buildGraph assembles Market -> Curve -> PV with PV as terminal output.
func buildGraph(t *testing.T) (*domain.DependencyGraph, *domain.DependencyNode, *domain.DependencyNode, *domain.DependencyNode) {
	t.Helper()
	g := domain.NewDependencyGraph()

	market := &domain.DependencyNode{
		Target:     domain.TargetSpec{Kind: domain.KindPrimitive, UID: domain.NewUniqueID("Tick", "EURUSD", "1")},
		Function:   "MarketDataSourcing",
		MarketData: true,
		Outputs:    []domain.ValueSpecification{spec("Market_Value", "Tick", "EURUSD")},
	}
	curve := &domain.DependencyNode{
		Target:   domain.TargetSpec{Kind: domain.KindPrimitive, UID: domain.NewUniqueID("Curve", "EUR", "1")},
		Function: "DiscountCurve",
		Inputs:   market.Outputs,
		Outputs:  []domain.ValueSpecification{spec("Curve", "Curve", "EUR")},
	}
	pv := &domain.DependencyNode{
		Target:   domain.TargetSpec{Kind: domain.KindPosition, UID: domain.NewUniqueID("Pos", "42", "1")},
		Function: "PresentValue",
		Inputs:   curve.Outputs,
		Outputs:  []domain.ValueSpecification{spec("Present_Value", "Pos", "42")},
	}

	require.NoError(t, g.AddNode(market))
	require.NoError(t, g.AddNode(curve))
	require.NoError(t, g.AddNode(pv))
	g.AddTerminalOutput(pv.Outputs[0], domain.ValueRequirement{
		ValueName: "Present_Value",
		Target:    domain.TargetReference{Kind: domain.KindPosition, ID: domain.NewExternalID("Pos", "42")},
	})
	return g, market, curve, pv
}

func TestDependencyGraph_AddNode(t *testing.T) {
	g, market, _, _ := buildGraph(t)
	assert.Equal(t, 3, g.Size())

	t.Run("Duplicate Node", func(t *testing.T) {
		err := g.AddNode(market)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNodeAlreadyInGraph)
	})

	t.Run("Missing Producer", func(t *testing.T) {
		orphan := &domain.DependencyNode{
			Function: "PresentValue",
			Inputs:   []domain.ValueSpecification{spec("Curve", "Curve", "GBP")},
			Outputs:  []domain.ValueSpecification{spec("Present_Value", "Pos", "43")},
		}
		err := g.AddNode(orphan)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingProducer)
	})

	t.Run("Market Data Index", func(t *testing.T) {
		require.Len(t, g.RequiredMarketData(), 1)
		assert.True(t, g.RequiredMarketData().Contains(market.Outputs[0]))
	})
}

func TestDependencyGraph_Clone(t *testing.T) {
	g, _, _, pv := buildGraph(t)
	clone := g.Clone()

	// Removing the terminal from the clone must not touch the original.
	for spec, reqs := range clone.TerminalOutputs() {
		for req := range reqs {
			clone.RemoveTerminalOutput(spec, req)
		}
	}
	assert.Empty(t, clone.TerminalOutputs())
	require.Len(t, g.TerminalOutputs(), 1)
	assert.Contains(t, g.TerminalOutputs(), pv.Outputs[0])

	// Node objects are shared.
	_, ok := clone.NodeProducing(pv.Outputs[0])
	assert.True(t, ok)
}

func TestDependencyGraph_SubGraph(t *testing.T) {
	g, market, curve, pv := buildGraph(t)

	t.Run("Exclude Root", func(t *testing.T) {
		sub := g.SubGraph(func(n *domain.DependencyNode) bool { return n != pv })
		assert.Equal(t, 2, sub.Size())
		// Terminal output lost its producer and is dropped with it.
		assert.Empty(t, sub.TerminalOutputs())
		_, ok := sub.NodeProducing(curve.Outputs[0])
		assert.True(t, ok)
	})

	t.Run("Keep All", func(t *testing.T) {
		sub := g.SubGraph(func(*domain.DependencyNode) bool { return true })
		assert.Equal(t, g.Size(), sub.Size())
		require.Len(t, sub.TerminalOutputs(), 1)
		assert.True(t, sub.RequiredMarketData().Contains(market.Outputs[0]))
	})
}

func TestDependencyGraph_ReplaceNode(t *testing.T) {
	g, _, _, pv := buildGraph(t)

	newTarget := domain.TargetSpec{Kind: domain.KindPosition, UID: domain.NewUniqueID("Pos", "42", "2")}
	replacement, err := g.ReplaceNode(pv, newTarget)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, newTarget, replacement.Target)

	// The old output spec no longer resolves; the rewritten one does.
	_, ok := g.NodeProducing(pv.Outputs[0])
	assert.False(t, ok)
	_, ok = g.NodeProducing(replacement.Outputs[0])
	assert.True(t, ok)

	// Terminal outputs follow the rewrite.
	require.Len(t, g.TerminalOutputs(), 1)
	assert.Contains(t, g.TerminalOutputs(), replacement.Outputs[0])

	t.Run("Unknown Node", func(t *testing.T) {
		_, err := g.ReplaceNode(pv, newTarget)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNodeNotInGraph)
	})
}

func TestDependencyGraph_RemoveTerminalOutput(t *testing.T) {
	g, _, _, pv := buildGraph(t)
	out := pv.Outputs[0]

	second := domain.ValueRequirement{
		ValueName: "Present_Value",
		Target:    domain.TargetReference{Kind: domain.KindPortfolioNode, ID: domain.NewExternalID("Node", "root")},
	}
	g.AddTerminalOutput(out, second)
	require.Len(t, g.TerminalOutputs()[out], 2)

	g.RemoveTerminalOutput(out, second)
	require.Len(t, g.TerminalOutputs()[out], 1)

	for req := range g.TerminalOutputs()[out] {
		g.RemoveTerminalOutput(out, req)
	}
	assert.Empty(t, g.TerminalOutputs())
}
