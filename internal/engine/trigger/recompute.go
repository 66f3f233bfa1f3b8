package trigger

import "time"

// RecomputationPeriod enforces a view definition's recomputation bounds: it
// vetoes cycles arriving faster than the minimum period and forces one once
// the maximum period has elapsed since the last cycle of the matching kind.
// Delta and full cycles are tracked separately; a full cycle also satisfies
// the delta clock.
type RecomputationPeriod struct {
	minPeriod time.Duration
	maxPeriod time.Duration
	cycleType CycleType

	lastCycle time.Time
}

// NewRecomputationPeriod creates a period trigger producing cycles of the
// given type. A zero min disables the veto; a zero max disables forcing.
func NewRecomputationPeriod(min, max time.Duration, cycleType CycleType) *RecomputationPeriod {
	return &RecomputationPeriod{minPeriod: min, maxPeriod: max, cycleType: cycleType}
}

// Query implements Trigger.
func (p *RecomputationPeriod) Query(now time.Time) Result {
	if p.lastCycle.IsZero() {
		// Nothing has run yet: eligible immediately, forced if a max period
		// is configured.
		if p.maxPeriod > 0 {
			return Result{Eligibility: EligibilityForce, Type: p.cycleType}
		}
		return Result{Eligibility: EligibilityEligible, Type: p.cycleType}
	}
	elapsed := now.Sub(p.lastCycle)
	if p.minPeriod > 0 && elapsed < p.minPeriod {
		return Result{
			Eligibility:     EligibilityNone,
			Type:            p.cycleType,
			NextStateChange: p.lastCycle.Add(p.minPeriod),
		}
	}
	if p.maxPeriod > 0 && elapsed >= p.maxPeriod {
		return Result{Eligibility: EligibilityForce, Type: p.cycleType}
	}
	r := Result{Eligibility: EligibilityEligible, Type: p.cycleType}
	if p.maxPeriod > 0 {
		r.NextStateChange = p.lastCycle.Add(p.maxPeriod)
	}
	return r
}

// CycleTriggered implements Trigger.
func (p *RecomputationPeriod) CycleTriggered(now time.Time, cycleType CycleType) {
	if cycleType == p.cycleType || cycleType == CycleFull {
		p.lastCycle = now
	}
}
