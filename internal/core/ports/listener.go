package ports

import (
	"time"

	"go.trai.ch/vista/internal/core/domain"
)

// CycleListener receives the results of the cycle worker's progress. Calls
// arrive from the worker goroutine; implementations must return promptly.
//
//go:generate mockgen -source=listener.go -destination=mocks/mock_listener.go -package=mocks
type CycleListener interface {
	// ViewCompiled reports a new compilation the worker will execute against.
	ViewCompiled(compiled *domain.CompiledView)
	// CompilationFailed reports that compilation for the given valuation
	// time failed.
	CompilationFailed(valuation time.Time, err error)
	// CycleStarted reports that a cycle began executing.
	CycleStarted(cycleID domain.UniqueID, opts domain.CycleOptions)
	// CycleCompleted reports a finished cycle. The reference is only valid
	// for the duration of the call; the worker retains it afterwards.
	CycleCompleted(ref CycleReference)
	// CycleExecutionFailed reports a cycle that did not complete, with the
	// options it was started for.
	CycleExecutionFailed(cycleID domain.UniqueID, opts domain.CycleOptions, err error)
	// WorkerCompleted reports that the worker's cycle sequence is exhausted
	// and the worker is shutting down.
	WorkerCompleted()
}
