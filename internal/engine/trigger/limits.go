package trigger

import "time"

// SuccessiveDeltaLimit converts the cycle after a run of deltas into a full
// cycle, bounding how much drift incremental execution can accumulate.
type SuccessiveDeltaLimit struct {
	limit  int
	deltas int
}

// NewSuccessiveDeltaLimit creates the limit trigger. A limit of zero or less
// never forces a full cycle.
func NewSuccessiveDeltaLimit(limit int) *SuccessiveDeltaLimit {
	return &SuccessiveDeltaLimit{limit: limit}
}

// Query implements Trigger. The trigger never initiates cycles; it only
// upgrades the type of cycles other triggers start.
func (l *SuccessiveDeltaLimit) Query(time.Time) Result {
	if l.limit > 0 && l.deltas >= l.limit {
		return Result{Eligibility: EligibilityNone, Type: CycleFull}
	}
	return Result{Eligibility: EligibilityNone, Type: CycleDelta}
}

// CycleTriggered implements Trigger.
func (l *SuccessiveDeltaLimit) CycleTriggered(_ time.Time, cycleType CycleType) {
	if cycleType == CycleFull {
		l.deltas = 0
		return
	}
	l.deltas++
}

// RunAsFastAsPossible forces a cycle at every query.
type RunAsFastAsPossible struct{}

// Query implements Trigger.
func (RunAsFastAsPossible) Query(time.Time) Result {
	return Result{Eligibility: EligibilityForce, Type: CycleDelta}
}

// CycleTriggered implements Trigger.
func (RunAsFastAsPossible) CycleTriggered(time.Time, CycleType) {}
