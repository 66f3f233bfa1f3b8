package ports

import (
	"context"
	"time"

	"go.trai.ch/vista/internal/core/domain"
)

// FilteredGraph pairs a previous dependency graph, reduced to its still-valid
// nodes, with the terminal requirements whose producers were filtered out and
// must be rebuilt.
type FilteredGraph struct {
	Graph *domain.DependencyGraph
	// MissingRequirements maps each requirement that lost its producer to the
	// specification that used to satisfy it.
	MissingRequirements map[domain.ValueRequirement]domain.ValueSpecification
}

// IncrementalInput carries the reusable remains of a previous compilation into
// an incremental compile.
type IncrementalInput struct {
	// PreviousGraphs holds the surviving graph per calculation configuration.
	// Configurations reduced to nothing are absent and recompile from scratch.
	PreviousGraphs map[string]FilteredGraph
	// PreviousResolutions seeds the resolver cache so unchanged references
	// resolve without hitting the underlying sources.
	PreviousResolutions map[domain.TargetReference]domain.UniqueID
	// ChangedPositions limits portfolio-derived requirements to positions
	// whose nodes could not be mapped from the previous portfolio tree. Nil
	// means recompute requirements for all positions.
	ChangedPositions map[domain.ObjectID]struct{}
}

// GraphCompiler builds dependency graphs for a view definition.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type GraphCompiler interface {
	// CompileFull builds every calculation configuration's graph from scratch
	// at the given valuation time and resolution instant.
	CompileFull(ctx context.Context, def *domain.ViewDefinition, valuation time.Time, vc domain.VersionCorrection) (*domain.CompiledView, error)

	// CompileIncremental rebuilds only the missing parts, reusing the graphs
	// and resolutions carried in prev.
	CompileIncremental(ctx context.Context, def *domain.ViewDefinition, valuation time.Time, vc domain.VersionCorrection, prev IncrementalInput) (*domain.CompiledView, error)
}
