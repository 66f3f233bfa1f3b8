package worker

import (
	"context"
	"sync"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/zerr"
)

// pendingSubscriptions tracks specifications whose subscription outcome has
// not arrived yet. await blocks until the set drains, acknowledgements coming
// in from the provider's feed goroutine.
type pendingSubscriptions struct {
	mu      sync.Mutex
	pending domain.SpecSet
	drained chan struct{}
}

func newPendingSubscriptions() *pendingSubscriptions {
	drained := make(chan struct{})
	close(drained)
	return &pendingSubscriptions{
		pending: make(domain.SpecSet),
		drained: drained,
	}
}

// add registers specifications that were just subscribed.
func (p *pendingSubscriptions) add(specs []domain.ValueSpecification) {
	if len(specs) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		p.drained = make(chan struct{})
	}
	for _, spec := range specs {
		p.pending.Add(spec)
	}
}

// ack removes acknowledged specifications, succeeded or failed alike.
func (p *pendingSubscriptions) ack(specs ...domain.ValueSpecification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return
	}
	for _, spec := range specs {
		delete(p.pending, spec)
	}
	if len(p.pending) == 0 {
		close(p.drained)
	}
}

// await blocks until every pending subscription has been acknowledged or the
// context ends.
func (p *pendingSubscriptions) await(ctx context.Context) error {
	p.mu.Lock()
	ch := p.drained
	p.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// updateSubscriptions reconciles the worker's market data subscriptions with
// a new compilation's requirements: new specifications are subscribed, ones no
// longer required are released, and failed subscriptions among the kept ones
// are retried.
func (w *Worker) updateSubscriptions(ctx context.Context, required domain.SpecSet) error {
	var subscribe, unsubscribe, retry []domain.ValueSpecification
	for spec := range required {
		if !w.subscribed.Contains(spec) {
			subscribe = append(subscribe, spec)
		} else if w.provider.Failed(spec) {
			retry = append(retry, spec)
		}
	}
	for spec := range w.subscribed {
		if !required.Contains(spec) {
			unsubscribe = append(unsubscribe, spec)
		}
	}

	if len(unsubscribe) > 0 {
		if err := w.provider.Unsubscribe(ctx, unsubscribe); err != nil {
			return zerr.Wrap(err, "unsubscribing market data")
		}
		for _, spec := range unsubscribe {
			delete(w.subscribed, spec)
		}
	}
	subscribe = append(subscribe, retry...)
	if len(subscribe) > 0 {
		w.pending.add(subscribe)
		if err := w.provider.Subscribe(ctx, subscribe); err != nil {
			w.pending.ack(subscribe...)
			return zerr.Wrap(err, "subscribing market data")
		}
		for _, spec := range subscribe {
			w.subscribed.Add(spec)
		}
	}
	if len(subscribe) > 0 || len(unsubscribe) > 0 {
		w.log.Debug("market data subscriptions reconciled",
			"view", w.definition.Name,
			"subscribed", len(subscribe),
			"released", len(unsubscribe))
	}
	return nil
}
