package trigger

import "time"

// FixedTime forces one full cycle at a set instant. The worker arms it with
// the expiry of the current compilation so a recompile happens the moment the
// compiled view stops being valid.
type FixedTime struct {
	at    time.Time
	armed bool
}

// NewFixedTime creates an unarmed fixed-time trigger.
func NewFixedTime() *FixedTime {
	return &FixedTime{}
}

// Set arms the trigger for the given instant. A zero instant disarms.
func (f *FixedTime) Set(at time.Time) {
	f.at = at
	f.armed = !at.IsZero()
}

// Reset disarms the trigger.
func (f *FixedTime) Reset() {
	f.armed = false
	f.at = time.Time{}
}

// Query implements Trigger. Until the instant is reached the result stays
// neutral so a combined trigger does not promote pending cycles to full.
func (f *FixedTime) Query(now time.Time) Result {
	if !f.armed {
		return Result{}
	}
	if now.Before(f.at) {
		return Result{NextStateChange: f.at}
	}
	return Result{Eligibility: EligibilityForce, Type: CycleFull}
}

// CycleTriggered implements Trigger. Firing disarms until re-armed: a full
// cycle at or past the instant consumed the trigger.
func (f *FixedTime) CycleTriggered(now time.Time, cycleType CycleType) {
	if f.armed && cycleType == CycleFull && !now.Before(f.at) {
		f.Reset()
	}
}
