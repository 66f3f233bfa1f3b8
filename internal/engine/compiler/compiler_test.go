package compiler_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/vista/internal/adapters/refdata"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/core/ports/mocks"
	"go.trai.ch/vista/internal/engine/compiler"
)

func epoch() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

// tickProvider satisfies any requirement whose target uses the Tick scheme,
// mirroring how the live provider answers for its configured schemes.
func tickProvider(ctrl *gomock.Controller) *mocks.MockMarketDataProvider {
	provider := mocks.NewMockMarketDataProvider(ctrl)
	provider.EXPECT().Satisfies(gomock.Any()).DoAndReturn(
		func(req domain.ValueRequirement) (domain.ValueSpecification, bool) {
			if req.Target.ID.Scheme != "Tick" {
				return domain.ValueSpecification{}, false
			}
			return domain.ValueSpecification{
				ValueName: req.ValueName,
				Target: domain.TargetSpec{
					Kind: req.Target.Kind,
					UID:  domain.NewUniqueID(req.Target.ID.Scheme, req.Target.ID.Value, ""),
				},
				Properties: req.Constraints,
			}, true
		}).AnyTimes()
	return provider
}

type fixture struct {
	compiler *compiler.Compiler
	store    *refdata.Store
	clock    clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	clock := clockwork.NewFakeClockAt(epoch())
	store := refdata.NewStore(clock, log)
	return &fixture{
		compiler: compiler.New(store, tickProvider(ctrl), log),
		store:    store,
		clock:    clock,
	}
}

func (f *fixture) seedPortfolio() *domain.Portfolio {
	root := &domain.PortfolioNode{
		UID:  domain.NewUniqueID("PortNode", "root", ""),
		Name: "root",
		Children: []*domain.PortfolioNode{
			{
				UID:  domain.NewUniqueID("PortNode", "tech", ""),
				Name: "tech",
				Positions: []*domain.Position{
					{UID: domain.NewUniqueID("Pos", "1", ""), Security: domain.NewExternalID("Tick", "AAPL"), Quantity: 10},
					{UID: domain.NewUniqueID("Pos", "2", ""), Security: domain.NewExternalID("Tick", "MSFT"), Quantity: 5},
				},
			},
		},
		Positions: []*domain.Position{
			{UID: domain.NewUniqueID("Pos", "3", ""), Security: domain.NewExternalID("Tick", "GOOG"), Quantity: 2},
		},
	}
	return f.store.PutPortfolio(domain.ObjectID{Scheme: "Port", Value: "main"}, "Main", root)
}

func portfolioDefinition(outputs ...string) *domain.ViewDefinition {
	return &domain.ViewDefinition{
		UID:       domain.NewUniqueID("View", "test", "1"),
		Name:      "test",
		Portfolio: domain.ObjectID{Scheme: "Port", Value: "main"},
		Configs: []domain.CalcConfig{
			{Name: "Default", PortfolioOutputs: outputs},
		},
	}
}

func TestCompileFullBuildsPortfolioGraph(t *testing.T) {
	f := newFixture(t)
	portfolio := f.seedPortfolio()
	def := portfolioDefinition("Present_Value")

	compiled, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)

	require.NotNil(t, compiled.Portfolio)
	assert.Equal(t, portfolio.UID, compiled.Portfolio.UID)
	assert.Equal(t, int64(1), compiled.CompilationID)

	graph, ok := compiled.Graphs["Default"]
	require.True(t, ok)
	// 3 market leaves, 3 position nodes, 2 aggregation nodes.
	assert.Equal(t, 8, graph.Size())
	assert.Len(t, graph.RequiredMarketData(), 3)
	// Terminals: one per position plus one per tree level.
	assert.Len(t, graph.TerminalOutputs(), 5)

	rootSpec := domain.ValueSpecification{
		ValueName:  "Present_Value",
		Target:     domain.TargetSpec{Kind: domain.KindPortfolioNode, UID: compiled.Portfolio.Root.UID},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionSumAggregation}}),
	}
	rootNode, ok := graph.NodeProducing(rootSpec)
	require.True(t, ok)
	assert.Equal(t, domain.FunctionSumAggregation, rootNode.Function)
	assert.Len(t, rootNode.Inputs, 2)

	portfolioRef := domain.TargetReference{
		Kind: domain.KindPortfolio,
		ID:   domain.NewExternalID("Port", "main"),
	}
	assert.Equal(t, portfolio.UID, compiled.ResolvedIdentifiers[portfolioRef])
}

func TestCompileFullSkipsPositionsWithoutMarketData(t *testing.T) {
	f := newFixture(t)
	root := &domain.PortfolioNode{
		UID:  domain.NewUniqueID("PortNode", "root", ""),
		Name: "root",
		Positions: []*domain.Position{
			{UID: domain.NewUniqueID("Pos", "1", ""), Security: domain.NewExternalID("Tick", "AAPL"), Quantity: 10},
			{UID: domain.NewUniqueID("Pos", "2", ""), Security: domain.NewExternalID("Unknown", "X"), Quantity: 1},
		},
	}
	f.store.PutPortfolio(domain.ObjectID{Scheme: "Port", Value: "main"}, "Main", root)
	def := portfolioDefinition("Present_Value")

	compiled, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)

	graph := compiled.Graphs["Default"]
	// Leaf and position node for the sourceable position, plus the aggregate.
	assert.Equal(t, 3, graph.Size())
	rootNode, ok := graph.NodeProducing(domain.ValueSpecification{
		ValueName:  "Present_Value",
		Target:     domain.TargetSpec{Kind: domain.KindPortfolioNode, UID: compiled.Portfolio.Root.UID},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionSumAggregation}}),
	})
	require.True(t, ok)
	assert.Len(t, rootNode.Inputs, 1)
}

func TestCompileFullSpecificMarketDataRequirement(t *testing.T) {
	f := newFixture(t)
	req := domain.ValueRequirement{
		ValueName: "Market_Value",
		Target:    domain.TargetReference{Kind: domain.KindPrimitive, ID: domain.NewExternalID("Tick", "EURUSD")},
	}
	def := &domain.ViewDefinition{
		UID:  domain.NewUniqueID("View", "fx", "1"),
		Name: "fx",
		Configs: []domain.CalcConfig{
			{Name: "Default", SpecificRequirements: []domain.ValueRequirement{req}},
		},
	}

	compiled, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)

	assert.Nil(t, compiled.Portfolio)
	graph := compiled.Graphs["Default"]
	assert.Equal(t, 1, graph.Size())
	assert.Len(t, graph.RequiredMarketData(), 1)

	spec := domain.ValueSpecification{
		ValueName: "Market_Value",
		Target: domain.TargetSpec{
			Kind: domain.KindPrimitive,
			UID:  domain.NewUniqueID("Tick", "EURUSD", ""),
		},
	}
	reqs, ok := graph.TerminalOutputs()[spec]
	require.True(t, ok)
	assert.True(t, reqs.Contains(domain.InternRequirement(req)))
}

func TestCompileFullSpecificPositionRequirement(t *testing.T) {
	f := newFixture(t)
	f.seedPortfolio()
	def := portfolioDefinition("Present_Value")
	req := domain.ValueRequirement{
		ValueName: "Present_Value",
		Target:    domain.TargetReference{Kind: domain.KindPosition, ID: domain.NewExternalID("Pos", "1")},
	}
	def.Configs[0].SpecificRequirements = []domain.ValueRequirement{req}

	compiled, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)

	// The portfolio expansion already produced the position value; the
	// addressed requirement reuses it instead of sourcing a bare leaf.
	graph := compiled.Graphs["Default"]
	assert.Equal(t, 8, graph.Size())

	posSpec := domain.ValueSpecification{
		ValueName:  "Present_Value",
		Target:     domain.TargetSpec{Kind: domain.KindPosition, UID: withVersion("Pos", "1", compiled)},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionPositionScaling}}),
	}
	node, ok := graph.NodeProducing(posSpec)
	require.True(t, ok)
	assert.Equal(t, domain.FunctionPositionScaling, node.Function)
	assert.True(t, graph.TerminalOutputs()[posSpec].Contains(domain.InternRequirement(req)))
}

func TestCompileFullSecurityRequirement(t *testing.T) {
	f := newFixture(t)
	f.store.PutEntity(
		domain.NewExternalID("Sec", "AAPL"),
		domain.ObjectID{Scheme: "SecDb", Value: "AAPL"},
	)
	req := domain.ValueRequirement{
		ValueName: "Fair_Value",
		Target:    domain.TargetReference{Kind: domain.KindSecurity, ID: domain.NewExternalID("Sec", "AAPL")},
	}
	def := &domain.ViewDefinition{
		UID:  domain.NewUniqueID("View", "sec", "1"),
		Name: "sec",
		Configs: []domain.CalcConfig{
			{Name: "Default", SpecificRequirements: []domain.ValueRequirement{req}},
		},
	}

	compiled, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)

	graph := compiled.Graphs["Default"]
	require.Equal(t, 0, graph.Size(), "security id scheme is not sourceable, requirement is skipped")

	// A security aliased under a sourceable scheme compiles into a pricing
	// node over a market data leaf.
	req.Target.ID = domain.NewExternalID("Tick", "AAPL")
	uid := f.store.PutEntity(req.Target.ID, domain.ObjectID{Scheme: "SecDb", Value: "AAPL"})
	def.Configs[0].SpecificRequirements = []domain.ValueRequirement{req}

	compiled, err = f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)
	graph = compiled.Graphs["Default"]
	assert.Equal(t, 2, graph.Size())
	assert.Len(t, graph.RequiredMarketData(), 1)

	spec := domain.ValueSpecification{
		ValueName:  "Fair_Value",
		Target:     domain.TargetSpec{Kind: domain.KindSecurity, UID: uid},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionSecurityPricing}}),
	}
	node, ok := graph.NodeProducing(spec)
	require.True(t, ok)
	assert.Equal(t, domain.FunctionSecurityPricing, node.Function)
	assert.Equal(t, uid, compiled.ResolvedIdentifiers[req.Target])
}

func TestCompileFullUnresolvedRequirementSkipped(t *testing.T) {
	f := newFixture(t)
	def := &domain.ViewDefinition{
		UID:  domain.NewUniqueID("View", "v", "1"),
		Name: "v",
		Configs: []domain.CalcConfig{
			{Name: "Default", SpecificRequirements: []domain.ValueRequirement{{
				ValueName: "Fair_Value",
				Target:    domain.TargetReference{Kind: domain.KindSecurity, ID: domain.NewExternalID("Sec", "MISSING")},
			}}},
		},
	}

	compiled, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)
	assert.Equal(t, 0, compiled.Graphs["Default"].Size())
	assert.Empty(t, compiled.Graphs["Default"].TerminalOutputs())
}

func TestCompileIncrementalReusesSurvivingNodes(t *testing.T) {
	f := newFixture(t)
	f.seedPortfolio()
	def := portfolioDefinition("Present_Value")

	first, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)
	firstGraph := first.Graphs["Default"]

	posSpec := domain.ValueSpecification{
		ValueName:  "Present_Value",
		Target:     domain.TargetSpec{Kind: domain.KindPosition, UID: withVersion("Pos", "1", first)},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionPositionScaling}}),
	}
	prevNode, ok := firstGraph.NodeProducing(posSpec)
	require.True(t, ok)

	second, err := f.compiler.CompileIncremental(context.Background(), def, epoch(), domain.VersionCorrectionLatest,
		makeIncremental(first))
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.CompilationID)
	secondGraph := second.Graphs["Default"]
	assert.Equal(t, firstGraph.Size(), secondGraph.Size())
	node, ok := secondGraph.NodeProducing(posSpec)
	require.True(t, ok)
	assert.Same(t, prevNode, node)
}

func TestCompileIncrementalRebuildsFilteredNodes(t *testing.T) {
	f := newFixture(t)
	f.seedPortfolio()
	def := portfolioDefinition("Present_Value")

	first, err := f.compiler.CompileFull(context.Background(), def, epoch(), domain.VersionCorrectionLatest)
	require.NoError(t, err)
	firstGraph := first.Graphs["Default"]

	// Drop every aggregation node, as an invalidation pass would after an
	// aggregate-level change.
	survived := firstGraph.SubGraph(func(n *domain.DependencyNode) bool {
		return n.Function != domain.FunctionSumAggregation
	})
	require.Less(t, survived.Size(), firstGraph.Size())

	input := makeIncremental(first)
	input.PreviousGraphs["Default"] = surviving(survived)

	second, err := f.compiler.CompileIncremental(context.Background(), def, epoch(), domain.VersionCorrectionLatest, input)
	require.NoError(t, err)

	secondGraph := second.Graphs["Default"]
	assert.Equal(t, firstGraph.Size(), secondGraph.Size())

	posSpec := domain.ValueSpecification{
		ValueName:  "Present_Value",
		Target:     domain.TargetSpec{Kind: domain.KindPosition, UID: withVersion("Pos", "1", first)},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionPositionScaling}}),
	}
	prevNode, _ := firstGraph.NodeProducing(posSpec)
	node, ok := secondGraph.NodeProducing(posSpec)
	require.True(t, ok)
	assert.Same(t, prevNode, node, "surviving position node is reused")

	rootSpec := domain.ValueSpecification{
		ValueName:  "Present_Value",
		Target:     domain.TargetSpec{Kind: domain.KindPortfolioNode, UID: second.Portfolio.Root.UID},
		Properties: domain.NewProperties(map[string][]string{"Function": {domain.FunctionSumAggregation}}),
	}
	_, ok = secondGraph.NodeProducing(rootSpec)
	assert.True(t, ok, "aggregate producers are rebuilt")
}

func withVersion(scheme, value string, compiled *domain.CompiledView) domain.UniqueID {
	return domain.NewUniqueID(scheme, value, compiled.Portfolio.UID.Version)
}

func makeIncremental(prev *domain.CompiledView) ports.IncrementalInput {
	graphs := make(map[string]ports.FilteredGraph, len(prev.Graphs))
	for name, g := range prev.Graphs {
		graphs[name] = surviving(g)
	}
	return ports.IncrementalInput{
		PreviousGraphs:      graphs,
		PreviousResolutions: prev.ResolvedIdentifiers,
	}
}

func surviving(g *domain.DependencyGraph) ports.FilteredGraph {
	return ports.FilteredGraph{Graph: g}
}
