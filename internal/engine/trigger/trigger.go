// Package trigger decides when the cycle worker runs its next computation
// cycle and whether that cycle recomputes everything or only the delta.
package trigger

import "time"

// Eligibility grades how strongly a trigger wants a cycle at an instant.
type Eligibility uint8

const (
	// EligibilityNone does not want a cycle. A Force from another trigger
	// still wins.
	EligibilityNone Eligibility = iota
	// EligibilityEligible permits a cycle if another trigger wants one.
	EligibilityEligible
	// EligibilityForce demands a cycle now.
	EligibilityForce
)

// CycleType selects how much of the graph a cycle recomputes.
type CycleType uint8

const (
	// CycleDelta recomputes only nodes whose inputs changed.
	CycleDelta CycleType = iota
	// CycleFull recomputes every node.
	CycleFull
)

// Result is a trigger's verdict for one instant.
type Result struct {
	Eligibility Eligibility
	Type        CycleType
	// NextStateChange is the earliest instant at which the verdict may
	// differ. Zero means the verdict is stable until an external event.
	NextStateChange time.Time
}

// Trigger is queried by the worker before each cycle. Implementations are
// called only from the worker goroutine.
type Trigger interface {
	// Query returns the trigger's verdict for the given instant.
	Query(now time.Time) Result
	// CycleTriggered informs the trigger that a cycle of the given type was
	// started at the given instant, whatever caused it.
	CycleTriggered(now time.Time, cycleType CycleType)
}

func earliest(a, b time.Time) time.Time {
	if a.IsZero() {
		return b
	}
	if b.IsZero() || a.Before(b) {
		return a
	}
	return b
}
