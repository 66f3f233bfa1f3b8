package worker

import (
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// The worker listens to its market data provider directly; the callbacks run
// on the provider's feed goroutine and only touch flag state.

// SubscriptionsSucceeded implements ports.MarketDataListener.
func (w *Worker) SubscriptionsSucceeded(specs []domain.ValueSpecification) {
	w.pending.ack(specs...)
}

// SubscriptionFailed implements ports.MarketDataListener. A failed
// subscription still acknowledges: cycles must not wait forever on data that
// will not come.
func (w *Worker) SubscriptionFailed(spec domain.ValueSpecification, reason string) {
	w.log.Warn("market data subscription failed",
		"view", w.definition.Name,
		"specification", spec.String(),
		"reason", reason)
	w.pending.ack(spec)
}

// SubscriptionsRemoved implements ports.MarketDataListener.
func (w *Worker) SubscriptionsRemoved(specs []domain.ValueSpecification) {
	w.pending.ack(specs...)
}

// ValuesChanged implements ports.MarketDataListener. Ticks accumulate until
// the next cycle; if market data may trigger cycles, one is requested.
func (w *Worker) ValuesChanged(specs []domain.ValueSpecification) {
	w.mu.Lock()
	for _, spec := range specs {
		w.marketDataChanged.Add(spec)
	}
	w.mu.Unlock()
	if w.cfg.Options.Flags.Has(domain.FlagTriggerCycleOnMarketDataChanged) {
		w.RequestCycle()
	}
}

// onTargetChanged records resolver change notifications. The set is narrowed
// against the compilation's watch set when the next cycle starts.
func (w *Worker) onTargetChanged(n ports.ChangeNotification) {
	w.mu.Lock()
	w.dirtyTargets[n.ObjectID] = struct{}{}
	w.mu.Unlock()
	w.RequestCycle()
}
