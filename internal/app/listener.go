package app

import (
	"sync"
	"time"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/engine/calc"
)

// logListener reports worker progress through the process logger. Calls
// arrive on the worker goroutine, so everything it does is cheap.
type logListener struct {
	view string
	log  ports.Logger

	mu      sync.Mutex
	configs []string
}

var _ ports.CycleListener = (*logListener)(nil)

func newLogListener(view string, log ports.Logger) *logListener {
	return &logListener{view: view, log: log}
}

func (l *logListener) ViewCompiled(compiled *domain.CompiledView) {
	l.mu.Lock()
	l.configs = compiled.ConfigNames()
	l.mu.Unlock()

	nodes := 0
	for _, g := range compiled.Graphs {
		nodes += g.Size()
	}
	l.log.Info("view compiled",
		"view", l.view,
		"compilation", compiled.CompilationID,
		"configs", len(compiled.Graphs),
		"nodes", nodes)
}

func (l *logListener) CompilationFailed(valuation time.Time, err error) {
	l.log.Error(err, "view", l.view, "valuation", valuation.Format(time.RFC3339))
}

func (l *logListener) CycleStarted(cycleID domain.UniqueID, opts domain.CycleOptions) {
	l.log.Debug("cycle started",
		"view", l.view,
		"cycle", cycleID.String(),
		"valuation", opts.ValuationTime.Format(time.RFC3339))
}

func (l *logListener) CycleCompleted(ref ports.CycleReference) {
	cycle, ok := ref.Cycle.(*calc.Cycle)
	if !ok {
		l.log.Info("cycle completed", "view", l.view, "cycle", ref.Cycle.UniqueID().String())
		return
	}

	l.mu.Lock()
	configs := l.configs
	l.mu.Unlock()

	values, missing := 0, 0
	for _, name := range configs {
		values += len(cycle.Values(name))
		missing += len(cycle.MissingOutputs(name))
	}
	l.log.Info("cycle completed",
		"view", l.view,
		"cycle", cycle.UniqueID().String(),
		"duration", cycle.Duration().String(),
		"values", values,
		"missing", missing)
}

func (l *logListener) CycleExecutionFailed(cycleID domain.UniqueID, opts domain.CycleOptions, err error) {
	l.log.Error(err, "view", l.view, "cycle", cycleID.String(), "valuation", opts.ValuationTime.String())
}

func (l *logListener) WorkerCompleted() {
	l.log.Info("view processing completed", "view", l.view)
}
