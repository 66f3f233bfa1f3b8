package ports

import (
	"context"
	"time"

	"go.trai.ch/vista/internal/core/domain"
)

// CycleState tracks a computation cycle through its lifecycle.
type CycleState uint8

const (
	// CycleAwaitingExecution is the state before Execute is called.
	CycleAwaitingExecution CycleState = iota
	// CycleExecuting is the state while computation runs.
	CycleExecuting
	// CycleExecuted is the state after a successful Execute.
	CycleExecuted
	// CycleDestroyed is the state after the last reference was released.
	CycleDestroyed
)

// ComputationCycle executes one compiled view against one market data snapshot.
type ComputationCycle interface {
	// UniqueID identifies the cycle.
	UniqueID() domain.UniqueID
	// State returns the cycle's lifecycle state.
	State() CycleState
	// ValuationTime returns the cycle's valuation instant.
	ValuationTime() time.Time
	// PreExecute carries computed values forward from the previous cycle for
	// graph nodes a delta cycle will not re-execute.
	PreExecute(previous ComputationCycle)
	// Execute computes the view's graphs against the snapshot.
	Execute(ctx context.Context) error
	// PostExecute releases per-cycle execution resources.
	PostExecute()
	// Duration returns how long Execute took, or zero before completion.
	Duration() time.Duration
}

// CycleReference is a counted handle on a cycle. Release must be called
// exactly once; the cycle is destroyed when the last reference is released.
type CycleReference struct {
	Cycle   ComputationCycle
	Release func()
}

// ComputationEngine creates executable cycles from compiled views.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type ComputationEngine interface {
	// CreateCycle builds a cycle for the compiled view, snapshot and options.
	// deltaFrom is the previous cycle for delta execution, or nil for a full
	// cycle.
	CreateCycle(compiled *domain.CompiledView, snapshot MarketDataSnapshot, opts domain.CycleOptions, deltaFrom ComputationCycle) (CycleReference, error)
}
