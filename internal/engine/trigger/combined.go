package trigger

import "time"

// Combined merges the verdicts of several triggers: the strongest eligibility
// wins, a full cycle demanded by any trigger makes the combined cycle full,
// and the next state change is the earliest of the parts.
type Combined struct {
	triggers []Trigger
}

// NewCombined combines the given triggers.
func NewCombined(triggers ...Trigger) *Combined {
	return &Combined{triggers: triggers}
}

// AddTrigger appends a trigger. Must only be called from the worker goroutine.
func (c *Combined) AddTrigger(t Trigger) {
	c.triggers = append(c.triggers, t)
}

// Query implements Trigger.
func (c *Combined) Query(now time.Time) Result {
	merged := Result{}
	for _, t := range c.triggers {
		r := t.Query(now)
		if r.Eligibility > merged.Eligibility {
			merged.Eligibility = r.Eligibility
		}
		if r.Type == CycleFull {
			merged.Type = CycleFull
		}
		merged.NextStateChange = earliest(merged.NextStateChange, r.NextStateChange)
	}
	return merged
}

// CycleTriggered implements Trigger.
func (c *Combined) CycleTriggered(now time.Time, cycleType CycleType) {
	for _, t := range c.triggers {
		t.CycleTriggered(now, cycleType)
	}
}
